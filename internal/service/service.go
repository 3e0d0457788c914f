package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/frontmatter"
	"pilgrim-testimonies/internal/repository"
	"pilgrim-testimonies/internal/service/display"
	"pilgrim-testimonies/internal/service/lead"
	"pilgrim-testimonies/internal/service/media"
	"pilgrim-testimonies/internal/service/notify"
	"pilgrim-testimonies/internal/service/testimony"
	"pilgrim-testimonies/internal/validate"
)

type Services struct {
	Testimony testimony.Service
	Display   display.Service
	Lead      lead.Service
	Notify    notify.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	validator := validate.New()
	parser := frontmatter.NewParser(cfg.AllowedMediaHosts)
	uploader := media.NewUploader(cfg, minioClient)

	notifyService := notify.NewService(cfg)
	testimonyService := testimony.NewService(validator, uploader, repos.Testimony, repos.SubmissionLog, cfg)
	if notifyService != nil {
		testimonyService.SetNotifier(notifyService)
	}

	displayService := display.NewService(repos.Testimony, parser, display.NewRedisCache(redisClient), cfg.CacheTTL)
	leadService := lead.NewService(validator, cfg)

	return &Services{
		Testimony: testimonyService,
		Display:   displayService,
		Lead:      leadService,
		Notify:    notifyService,
	}
}
