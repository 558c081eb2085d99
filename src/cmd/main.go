package main

import (
	cfg "kaviospix/src/configuration"
	server "kaviospix/src/server"
)

func main() {
	config := cfg.ReadProperties()
	server.RunServer(config)
}
