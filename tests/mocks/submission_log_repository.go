package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pilgrim-testimonies/internal/domain"
)

type SubmissionLogRepository struct {
	mock.Mock
}

func (m *SubmissionLogRepository) Create(ctx context.Context, entry *domain.SubmissionLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *SubmissionLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.SubmissionLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubmissionLog), args.Error(1)
}
