package main

import (
	"context"
	"log"
	"os"

	"stockroom/cmd"
	"stockroom/internal/container"
	"stockroom/internal/database"
	"stockroom/internal/logger"
	"stockroom/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("could not connect to the database", zap.Error(err))
	}
	defer db.Close()

	zapLogger.Info("Connected to the database successfully")

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	routes.RegisterRoutes(router, appContainer, zapLogger)
	routes.RegisterUtilityRoutes(router)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	if err := router.Run(host); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
