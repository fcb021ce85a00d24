// Package notify holds the non-push notification channels. Email and SMS are
// delivered through provider gateways in production; these implementations
// write structured log records in the exact shape the gateway adapters will
// take, so the fan-out, metrics and failure handling are exercised end to end.
package notify

import (
	"context"
	"log/slog"

	"yumexpress/internal/core/ports"
)

// EmailSender implements NotificationSender for the email channel.
type EmailSender struct {
	logger *slog.Logger
}

// NewEmailSender creates an email sender writing through the given logger.
func NewEmailSender(logger *slog.Logger) *EmailSender {
	return &EmailSender{logger: logger.With("component", "email_sender")}
}

// Channel names the delivery channel for logging and metrics.
func (s *EmailSender) Channel() string {
	return "email"
}

// Send delivers one notification over email.
func (s *EmailSender) Send(ctx context.Context, notification ports.Notification) error {
	s.logger.InfoContext(ctx, "Email notification",
		"recipient_id", notification.RecipientID,
		"recipient_role", notification.RecipientRole.String(),
		"title", notification.Title,
		"body", notification.Body,
		"order_number", notification.OrderNumber)
	return nil
}

// SMSSender implements NotificationSender for the SMS channel.
type SMSSender struct {
	logger *slog.Logger
}

// NewSMSSender creates an SMS sender writing through the given logger.
func NewSMSSender(logger *slog.Logger) *SMSSender {
	return &SMSSender{logger: logger.With("component", "sms_sender")}
}

// Channel names the delivery channel for logging and metrics.
func (s *SMSSender) Channel() string {
	return "sms"
}

// Send delivers one notification over SMS.
func (s *SMSSender) Send(ctx context.Context, notification ports.Notification) error {
	s.logger.InfoContext(ctx, "SMS notification",
		"recipient_id", notification.RecipientID,
		"recipient_role", notification.RecipientRole.String(),
		"title", notification.Title,
		"body", notification.Body,
		"order_number", notification.OrderNumber)
	return nil
}
