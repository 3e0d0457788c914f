package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
)

// MinIOUploader stores media in a public bucket, for deployments that keep
// assets on their own object storage instead of the CDN provider.
type MinIOUploader struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOUploader(cfg *config.Config, client *minio.Client) *MinIOUploader {
	return &MinIOUploader{client: client, cfg: cfg}
}

func (u *MinIOUploader) Upload(ctx context.Context, file domain.MediaFile) (*domain.UploadedMedia, error) {
	data, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		return nil, &domain.UploadError{FileName: file.Name, Err: fmt.Errorf("invalid base64 payload: %w", err)}
	}

	kind := file.Kind()
	objectPath := fmt.Sprintf("testimonies/%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), extensionFor(file))

	_, err = u.client.PutObject(ctx, u.cfg.MinIOBucket, objectPath,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: file.Type})
	if err != nil {
		return nil, &domain.UploadError{FileName: file.Name, Err: err}
	}

	return &domain.UploadedMedia{
		URL:      u.publicURL(objectPath),
		Kind:     kind,
		ByteSize: int64(len(data)),
	}, nil
}

func (u *MinIOUploader) publicURL(objectPath string) string {
	scheme := "http"
	if u.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.MinIOPublicEndpoint, u.cfg.MinIOBucket, url.PathEscape(objectPath))
}

func extensionFor(file domain.MediaFile) string {
	if i := strings.LastIndex(file.Name, "."); i >= 0 {
		return file.Name[i:]
	}
	if i := strings.LastIndex(file.Type, "/"); i >= 0 {
		return "." + file.Type[i+1:]
	}
	return ""
}
