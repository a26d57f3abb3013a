package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foxbuy-watchdog/internal/domain"
)

type NotificationRecordRepository struct {
	mock.Mock
}

func (m *NotificationRecordRepository) Exists(ctx context.Context, watchdogID uuid.UUID, adID int64) (bool, error) {
	args := m.Called(ctx, watchdogID, adID)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRecordRepository) Record(ctx context.Context, watchdogID uuid.UUID, adID int64) error {
	args := m.Called(ctx, watchdogID, adID)
	return args.Error(0)
}

func (m *NotificationRecordRepository) ListByWatchdog(ctx context.Context, watchdogID uuid.UUID) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, watchdogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}
