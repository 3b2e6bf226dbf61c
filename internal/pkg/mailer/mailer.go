// Package mailer sends transactional email through the Resend API.
// Delivery is best-effort everywhere it is used: callers treat failures as
// log-only and never roll back the primary mutation.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

// Sender is the interface domain services depend on, so tests can swap in fakes.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
	SendModerationNotice(ctx context.Context, toEmail, subject, body string) error
	SendPaymentReceipt(ctx context.Context, toEmail, reference string, amountCents int) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
	appName   string
}

// NewResendSender creates a Sender backed by Resend. fromEmail must belong to
// a domain verified in the Resend dashboard.
func NewResendSender(apiKey, fromEmail, appName string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appName:   appName,
	}
}

func (s *resendSender) send(ctx context.Context, toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.appName, s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *resendSender) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	html := fmt.Sprintf(
		`<p>Welcome to %s!</p><p>Your verification code is:</p><h2>%s</h2><p>If you didn't sign up, you can ignore this email.</p>`,
		s.appName, code)
	return s.send(ctx, toEmail, fmt.Sprintf("Verify your %s account", s.appName), html)
}

func (s *resendSender) SendModerationNotice(ctx context.Context, toEmail, subject, body string) error {
	html := fmt.Sprintf(`<p>%s</p><p>— The %s team</p>`, body, s.appName)
	return s.send(ctx, toEmail, subject, html)
}

func (s *resendSender) SendPaymentReceipt(ctx context.Context, toEmail, reference string, amountCents int) error {
	html := fmt.Sprintf(
		`<p>Your payment of $%.2f was received.</p><p>Reference number: <strong>%s</strong></p>`,
		float64(amountCents)/100, reference)
	return s.send(ctx, toEmail, "Payment received", html)
}

// NoopSender is used when no Resend API key is configured, so local
// development does not require an email account.
type NoopSender struct{}

func (NoopSender) SendVerificationCode(_ context.Context, toEmail, code string) error {
	logger.Info("mailer disabled, verification code for %s: %s", toEmail, code)
	return nil
}

func (NoopSender) SendModerationNotice(_ context.Context, toEmail, subject, _ string) error {
	logger.Info("mailer disabled, skipping notice %q to %s", subject, toEmail)
	return nil
}

func (NoopSender) SendPaymentReceipt(_ context.Context, toEmail, reference string, _ int) error {
	logger.Info("mailer disabled, skipping receipt %s to %s", reference, toEmail)
	return nil
}
