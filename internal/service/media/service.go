// Package media uploads submission assets to the configured object-storage
// backend and hands back durable URLs.
package media

import (
	"context"

	"github.com/minio/minio-go/v7"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
)

// Uploader sends one binary asset to the media backend. Failures wrap into
// domain.UploadError so the ingestion service can apply its failure policy.
type Uploader interface {
	Upload(ctx context.Context, file domain.MediaFile) (*domain.UploadedMedia, error)
}

// NewUploader selects the backend from configuration. Cloudinary is the
// default; MinIO serves self-hosted deployments and requires a connected
// client, which startup guarantees when the driver is selected.
func NewUploader(cfg *config.Config, minioClient *minio.Client) Uploader {
	if cfg.MediaDriver == "minio" && minioClient != nil {
		return NewMinIOUploader(cfg, minioClient)
	}
	return NewCloudinaryUploader(cfg)
}
