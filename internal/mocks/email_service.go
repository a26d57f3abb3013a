package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foxbuy-watchdog/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWatchdogDigest(ctx context.Context, toEmail string, digest email.WatchdogDigest) error {
	args := m.Called(ctx, toEmail, digest)
	return args.Error(0)
}
