package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

type resendSender struct {
	client    *resend.Client
	fromEmail string
}

func NewResendSender(apiKey, fromEmail string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Foxbuy <%s>", s.fromEmail),
		To:      []string{to},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
