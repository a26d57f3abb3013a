package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User               UserRepository
	Watchdog           WatchdogRepository
	NotificationRecord NotificationRecordRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:               NewUserRepository(db),
		Watchdog:           NewWatchdogRepository(db),
		NotificationRecord: NewNotificationRecordRepository(db),
	}
}
