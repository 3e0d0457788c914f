package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pilgrim-testimonies/internal/domain"
)

type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, file domain.MediaFile) (*domain.UploadedMedia, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedMedia), args.Error(1)
}
