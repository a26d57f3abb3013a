package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"foxbuy-watchdog/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{"join": strings.Join}).ParseFS(templateFS, "templates/*.html"),
)

type Service interface {
	SendWatchdogDigest(ctx context.Context, toEmail string, digest WatchdogDigest) error
}

// WatchdogDigest is one owner's summary for one ad event.
type WatchdogDigest struct {
	RecipientName string
	Items         []DigestItem
}

type DigestItem struct {
	AdID      int64
	Title     string
	Price     string
	Link      string
	Watchdogs []string
}

// Sender is the raw transport. Send returns nil only once the provider has
// accepted the message.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type service struct {
	sender Sender
	log    *zap.Logger
}

func NewService(cfg *config.Config, log *zap.Logger) (Service, error) {
	var sender Sender
	switch cfg.MailDriver {
	case "resend", "":
		sender = NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
	case "smtp":
		sender = NewSMTPSender(SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			SenderEmail: cfg.FromEmail,
		})
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
	return NewServiceWithSender(sender, log), nil
}

func NewServiceWithSender(sender Sender, log *zap.Logger) Service {
	return &service{sender: sender, log: log}
}

func (s *service) SendWatchdogDigest(ctx context.Context, toEmail string, digest WatchdogDigest) error {
	if len(digest.Items) == 0 {
		return nil
	}

	subject := digestSubject(digest)
	body, err := render("watchdog_digest.html", struct {
		Title string
		Name  string
		Items []DigestItem
	}{
		Title: subject,
		Name:  digest.RecipientName,
		Items: digest.Items,
	})
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, toEmail, subject, body); err != nil {
		s.log.Warn("watchdog digest rejected by mail transport",
			zap.String("to", toEmail), zap.Int("items", len(digest.Items)), zap.Error(err))
		return fmt.Errorf("failed to send watchdog digest: %w", err)
	}

	s.log.Debug("watchdog digest sent", zap.String("to", toEmail), zap.Int("items", len(digest.Items)))
	return nil
}

func digestSubject(digest WatchdogDigest) string {
	if len(digest.Items) == 1 {
		return fmt.Sprintf("Foxbuy Watchdog: %s", digest.Items[0].Title)
	}
	return fmt.Sprintf("Foxbuy Watchdog: %d new listings match your criteria", len(digest.Items))
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
