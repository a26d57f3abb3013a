package watchdog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/repository"
)

// Ledger answers "was this pair already notified". Postgres is the source of
// truth; Redis only ever holds markers for pairs already recorded there, so a
// cache hit is always safe to trust and a miss falls through.
type Ledger interface {
	Exists(ctx context.Context, watchdogID uuid.UUID, adID int64) (bool, error)
	Record(ctx context.Context, watchdogID uuid.UUID, adID int64) error
}

type ledger struct {
	repo  repository.NotificationRecordRepository
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewLedger(repo repository.NotificationRecordRepository, redis *redis.Client, ttl time.Duration, log *zap.Logger) Ledger {
	return &ledger{repo: repo, redis: redis, ttl: ttl, log: log}
}

func ledgerKey(watchdogID uuid.UUID, adID int64) string {
	return fmt.Sprintf("watchdog:sent:%s:%d", watchdogID, adID)
}

func (l *ledger) Exists(ctx context.Context, watchdogID uuid.UUID, adID int64) (bool, error) {
	key := ledgerKey(watchdogID, adID)

	if l.redis != nil {
		n, err := l.redis.Exists(ctx, key).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			l.log.Debug("ledger cache unavailable", zap.String("key", key), zap.Error(err))
		}
	}

	exists, err := l.repo.Exists(ctx, watchdogID, adID)
	if err != nil {
		return false, err
	}

	if exists {
		l.remember(ctx, key)
	}
	return exists, nil
}

func (l *ledger) Record(ctx context.Context, watchdogID uuid.UUID, adID int64) error {
	if err := l.repo.Record(ctx, watchdogID, adID); err != nil {
		return err
	}
	l.remember(ctx, ledgerKey(watchdogID, adID))
	return nil
}

func (l *ledger) remember(ctx context.Context, key string) {
	if l.redis == nil {
		return
	}
	if err := l.redis.Set(ctx, key, 1, l.ttl).Err(); err != nil {
		l.log.Debug("ledger cache write failed", zap.String("key", key), zap.Error(err))
	}
}
