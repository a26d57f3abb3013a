package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/config"
	"foxbuy-watchdog/internal/pkg/metrics"
	"foxbuy-watchdog/internal/repository"
	"foxbuy-watchdog/internal/service/auth"
	"foxbuy-watchdog/internal/service/email"
	"foxbuy-watchdog/internal/service/notification"
	"foxbuy-watchdog/internal/service/user"
	"foxbuy-watchdog/internal/service/watchdog"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Email        email.Service
	Notification notification.Service
	Watchdog     watchdog.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config, m *metrics.Metrics, log *zap.Logger) (*Services, error) {
	emailService, err := email.NewService(cfg, log.Named("email"))
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(repos.User, cfg)
	userService := user.NewService(repos.User)
	notificationService := notification.NewService(repos.User, emailService, cfg.Domain)

	ledger := watchdog.NewLedger(repos.NotificationRecord, redis, cfg.WatchdogLedgerCacheTTL, log.Named("ledger"))
	watchdogService := watchdog.NewService(
		repos.Watchdog,
		repos.NotificationRecord,
		ledger,
		userService,
		notificationService,
		m,
		log.Named("watchdog"),
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Email:        emailService,
		Notification: notificationService,
		Watchdog:     watchdogService,
	}, nil
}
