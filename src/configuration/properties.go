package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"DEBUG"`

		Auth   AuthProperties       `envPrefix:"AUTH_"`
		Mongo  MongoProperties      `envPrefix:"MONGO_"`
		S3     S3Properties         `envPrefix:"S3_"`
		Server HttpServerProperties `envPrefix:"HTTP_"`
	}

	AuthProperties struct {
		JWTSecret      string        `env:"JWT_SECRET"`
		JWTExpire      time.Duration `env:"JWT_EXPIRE" envDefault:"168h"`
		GoogleIssuer   string        `env:"GOOGLE_ISSUER" envDefault:"https://accounts.google.com"`
		GoogleID       string        `env:"GOOGLE_ID"`
		GoogleSecret   string        `env:"GOOGLE_SECRET"`
		GoogleRedirect string        `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8088/api/auth/google/callback"`
		FrontendURL    string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"kaviospix"`
		Port        string        `env:"PORT" envDefault:"8088"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	MongoProperties struct {
		URI         string        `env:"URI" envDefault:"mongodb://localhost:27017"`
		Database    string        `env:"DATABASE" envDefault:"kaviospix"`
		ConnTimeout time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	}

	S3Properties struct {
		Host        string        `env:"HOST" envDefault:"s3.minio.com"`
		AccessKey   string        `env:"ACCESS_KEY"`
		SecretKey   string        `env:"SECRET_KEY"`
		Bucket      string        `env:"BUCKET" envDefault:"kaviospix"`
		UseSSL      bool          `env:"USE_SSL" envDefault:"true"`
		PublicURL   string        `env:"PUBLIC_URL" envDefault:"https://s3.minio.com"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}
)

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}
