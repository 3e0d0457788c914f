package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pilgrim-testimonies/internal/domain"
)

type TestimonyRepository struct {
	mock.Mock
}

func (m *TestimonyRepository) CreateIfAbsent(ctx context.Context, doc domain.EncodedDocument) (*domain.CreateResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateResult), args.Error(1)
}

func (m *TestimonyRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Document, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *TestimonyRepository) ListTestimonyDocuments(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
