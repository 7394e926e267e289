package main

import (
	"context"
	"log"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stockpulse/internal/directory"
	"stockpulse/internal/handler"
	"stockpulse/internal/logger"
	"stockpulse/internal/store"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}

	cfg, err := store.LoadConfig(configPath())
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("error loading AWS config: %v", err)
	}

	dir := directory.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Directory.Table, cfg.Directory.PageSize)
	subHandler := handler.NewSubscriptionHandler(dir)

	r := gin.Default()

	// The subscribe form and the unsubscribe link are served from a
	// static frontend on another origin.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.POST("/subscribe", subHandler.Subscribe)
	r.GET("/unsubscribe", subHandler.Unsubscribe)
	r.GET("/health", subHandler.Health)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
