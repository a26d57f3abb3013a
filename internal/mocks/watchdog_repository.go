package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foxbuy-watchdog/internal/domain"
)

type WatchdogRepository struct {
	mock.Mock
}

func (m *WatchdogRepository) Create(ctx context.Context, w *domain.Watchdog) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WatchdogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Watchdog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Watchdog), args.Error(1)
}

func (m *WatchdogRepository) FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Watchdog, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Watchdog), args.Error(1)
}

func (m *WatchdogRepository) FindActiveByCategoryOrUnfiltered(ctx context.Context, categoryID *int64) ([]domain.Watchdog, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Watchdog), args.Error(1)
}

func (m *WatchdogRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Watchdog, int64, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Watchdog), args.Get(1).(int64), args.Error(2)
}

func (m *WatchdogRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WatchdogRepository) DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WatchdogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
