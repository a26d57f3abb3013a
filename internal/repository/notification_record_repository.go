package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"foxbuy-watchdog/internal/domain"
)

type NotificationRecordRepository interface {
	Exists(ctx context.Context, watchdogID uuid.UUID, adID int64) (bool, error)
	Record(ctx context.Context, watchdogID uuid.UUID, adID int64) error
	ListByWatchdog(ctx context.Context, watchdogID uuid.UUID) ([]domain.NotificationRecord, error)
}

type notificationRecordRepository struct {
	db *sqlx.DB
}

func NewNotificationRecordRepository(db *sqlx.DB) NotificationRecordRepository {
	return &notificationRecordRepository{db: db}
}

func (r *notificationRecordRepository) Exists(ctx context.Context, watchdogID uuid.UUID, adID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM watchdog_notifications WHERE watchdog_id = $1 AND ad_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, watchdogID, adID)
	return exists, err
}

// Record is idempotent: a concurrent or repeated insert of the same pair is a no-op.
func (r *notificationRecordRepository) Record(ctx context.Context, watchdogID uuid.UUID, adID int64) error {
	query := `
		INSERT INTO watchdog_notifications (watchdog_id, ad_id)
		VALUES ($1, $2)
		ON CONFLICT (watchdog_id, ad_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, watchdogID, adID)
	return err
}

func (r *notificationRecordRepository) ListByWatchdog(ctx context.Context, watchdogID uuid.UUID) ([]domain.NotificationRecord, error) {
	var records []domain.NotificationRecord
	query := `SELECT * FROM watchdog_notifications WHERE watchdog_id = $1 ORDER BY sent_at DESC`
	err := r.db.SelectContext(ctx, &records, query, watchdogID)
	return records, err
}
