package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (m *Notifier) NotifyNewTestimony(ctx context.Context, name, trip, reviewURL string) error {
	args := m.Called(ctx, name, trip, reviewURL)
	return args.Error(0)
}
