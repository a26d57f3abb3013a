package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foxbuy-watchdog/internal/domain"
)

type WatchdogService struct {
	mock.Mock
}

func (m *WatchdogService) Register(ctx context.Context, ownerID uuid.UUID, input domain.CreateWatchdogInput) (*domain.Watchdog, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Watchdog), args.Error(1)
}

func (m *WatchdogService) OnAdEvent(ctx context.Context, event domain.AdEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *WatchdogService) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Watchdog], error) {
	args := m.Called(ctx, ownerID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Watchdog]), args.Error(1)
}

func (m *WatchdogService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *WatchdogService) DeactivateOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WatchdogService) ListNotifications(ctx context.Context, id uuid.UUID) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}
