package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/handler"
	"pilgrim-testimonies/internal/pkg/i18n"
	"pilgrim-testimonies/internal/repository"
	"pilgrim-testimonies/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := i18n.LoadTranslations("locales"); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = config.NewPostgresDB(cfg)
		if err != nil {
			log.Printf("Warning: database unavailable, submission log disabled: %v", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = config.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Redis unavailable, caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var minioClient *minio.Client
	if cfg.MediaDriver == "minio" {
		var err error
		minioClient, err = config.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
	}

	repos := repository.NewRepositories(cfg, db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := handler.NewApp(handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
