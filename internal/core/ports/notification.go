package ports

import (
	"context"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
)

// Notification is one message addressed to one recipient, ready to be
// delivered over a concrete channel. Broadcast routing has already been
// expanded into individual recipients by the time a sender sees it.
type Notification struct {
	RecipientID   kernel.UUID
	RecipientRole order.ActorRole
	Title         string
	Body          string
	OrderID       kernel.UUID
	OrderNumber   string
}

// NotificationSender delivers notifications over one channel (push, email,
// SMS). Senders are fanned out by the dispatcher; a failing channel must not
// affect the others.
type NotificationSender interface {
	// Channel names the delivery channel, e.g. "push" or "sms".
	// Used for logging and metrics labels.
	Channel() string

	// Send delivers one notification. Implementations honor ctx
	// cancellation; the dispatcher bounds each call with a timeout.
	Send(ctx context.Context, notification Notification) error
}
