package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/config"
	"foxbuy-watchdog/internal/service/email"
)

type sentMessage struct {
	to, subject, html string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{to, subject, html})
	return nil
}

func TestEmailService_SendWatchdogDigest(t *testing.T) {
	ctx := context.Background()
	item := email.DigestItem{
		AdID:      42,
		Title:     "Mountain Bike",
		Price:     "150",
		Link:      "https://foxbuy.test/advertisement/42",
		Watchdogs: []string{"bike", "category 3"},
	}

	t.Run("Should name the listing in the subject of a single-item digest", func(t *testing.T) {
		sender := &fakeSender{}
		svc := email.NewServiceWithSender(sender, zap.NewNop())

		err := svc.SendWatchdogDigest(ctx, "jan@example.com", email.WatchdogDigest{RecipientName: "Jan", Items: []email.DigestItem{item}})

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, "jan@example.com", msg.to)
		assert.Equal(t, "Foxbuy Watchdog: Mountain Bike", msg.subject)
		assert.Contains(t, msg.html, "Hi Jan")
		assert.Contains(t, msg.html, item.Link)
		assert.Contains(t, msg.html, "matched bike; category 3")
	})

	t.Run("Should count listings in the subject of a larger digest", func(t *testing.T) {
		sender := &fakeSender{}
		svc := email.NewServiceWithSender(sender, zap.NewNop())
		other := item
		other.AdID, other.Title = 43, "Road Bike"

		err := svc.SendWatchdogDigest(ctx, "jan@example.com", email.WatchdogDigest{Items: []email.DigestItem{item, other}})

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "Foxbuy Watchdog: 2 new listings match your criteria", sender.sent[0].subject)
		assert.Contains(t, sender.sent[0].html, "Road Bike")
	})

	t.Run("Should skip an empty digest", func(t *testing.T) {
		sender := &fakeSender{}
		svc := email.NewServiceWithSender(sender, zap.NewNop())

		require.NoError(t, svc.SendWatchdogDigest(ctx, "jan@example.com", email.WatchdogDigest{}))
		assert.Empty(t, sender.sent)
	})

	t.Run("Should return the transport error", func(t *testing.T) {
		cause := errors.New("mailbox unavailable")
		svc := email.NewServiceWithSender(&fakeSender{err: cause}, zap.NewNop())

		err := svc.SendWatchdogDigest(ctx, "jan@example.com", email.WatchdogDigest{Items: []email.DigestItem{item}})
		assert.ErrorIs(t, err, cause)
	})
}

func TestNewService(t *testing.T) {
	for _, driver := range []string{"", "resend", "smtp"} {
		_, err := email.NewService(&config.Config{MailDriver: driver}, zap.NewNop())
		assert.NoError(t, err, driver)
	}

	_, err := email.NewService(&config.Config{MailDriver: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSMTPSender_IncompleteConfig(t *testing.T) {
	sender := email.NewSMTPSender(email.SMTPConfig{Host: "smtp.example.com", Port: 587})

	err := sender.Send(context.Background(), "jan@example.com", "subject", "<p>hi</p>")
	assert.ErrorIs(t, err, email.ErrSMTPConfigIncomplete)
}
