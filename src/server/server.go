package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	app "kaviospix/src/app"
	cfg "kaviospix/src/configuration"
	db "kaviospix/src/repository"
)

func RunServer(config *cfg.Properties) {
	if level, err := log.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Auth.FrontendURL},
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	pprof.Register(router)

	clientS3, err := app.NewMinioS3Client(
		config.S3.Host,
		config.S3.AccessKey,
		config.S3.SecretKey,
		config.S3.Bucket,
		config.S3.PublicURL,
		config.S3.UseSSL)
	if err != nil {
		log.Fatalf("could not connect to minio: %v", err)
	}

	store, err := db.NewMongo(context.Background(), config)
	if err != nil {
		log.Fatalf("database not responding: %v", err)
	}

	tokens := app.NewTokenIssuer(config.Auth.JWTSecret, config.Auth.JWTExpire)
	authService := app.NewAuthService(store.Users, tokens)
	albumService := app.NewAlbumService(store.Albums, store.Images, store.Users)
	imageService := app.NewImageService(store.Albums, store.Images, clientS3)
	trashService := app.NewTrashService(store.Albums, store.Images, clientS3)

	authHandler := NewAuthHandler(config, authService)
	albumHandler := NewAlbumHandler(albumService)
	imageHandler := NewImageHandler(imageService)
	trashHandler := NewTrashHandler(trashService, albumService, imageService)

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "KaviosPix API is running"})
	})

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google", authHandler.Google)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/me", authenticate(authService), authHandler.Me)

	albums := api.Group("/albums", authenticate(authService))
	albums.POST("", albumHandler.Create)
	albums.GET("", albumHandler.List)
	albums.PUT("/:albumId", albumHandler.Update)
	albums.POST("/:albumId/share", albumHandler.Share)
	albums.DELETE("/:albumId", albumHandler.Delete)

	albums.POST("/:albumId/images", imageHandler.Upload)
	albums.GET("/:albumId/images", imageHandler.List)
	albums.GET("/:albumId/images/favorites", imageHandler.ListFavorites)
	albums.PUT("/:albumId/images/:imageId/favorite", imageHandler.ToggleFavorite)
	albums.POST("/:albumId/images/:imageId/comments", imageHandler.AddComment)
	albums.DELETE("/:albumId/images/:imageId", imageHandler.Delete)

	trash := api.Group("/trash", authenticate(authService))
	trash.GET("", trashHandler.List)
	trash.POST("/albums/:albumId/restore", trashHandler.RestoreAlbum)
	trash.POST("/images/:imageId/restore", trashHandler.RestoreImage)
	trash.DELETE("/albums/:albumId", trashHandler.PurgeAlbum)
	trash.DELETE("/images/:imageId", trashHandler.PurgeImage)
	trash.DELETE("/empty", trashHandler.Empty)

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "API route not found"})
	})

	router.Run(fmt.Sprintf(":%s", config.Server.Port))
}
