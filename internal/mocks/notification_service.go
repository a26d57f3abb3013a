package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foxbuy-watchdog/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Dispatch(ctx context.Context, ownerID uuid.UUID, matches []domain.WatchdogMatch) error {
	args := m.Called(ctx, ownerID, matches)
	return args.Error(0)
}
