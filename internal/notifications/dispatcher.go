// Package notifications fans order status change events out to the delivery
// channels. Dispatch happens after the transaction that recorded the change
// has committed, so a slow or failing channel can never roll back an order.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/core/domain/services"
	"yumexpress/internal/core/ports"
	"yumexpress/internal/metrics"
)

const defaultSendTimeout = 5 * time.Second

// Dispatcher expands routed notifications into concrete recipients and
// delivers each one over every configured channel concurrently. Delivery
// failures are logged and counted, never propagated to the caller.
type Dispatcher struct {
	router  services.NotificationRouter
	senders []ports.NotificationSender
	drivers ports.DriverRepository
	timeout time.Duration
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given channels. The timeout
// bounds each individual send; a non-positive value falls back to the
// default of five seconds.
func NewDispatcher(
	router services.NotificationRouter,
	senders []ports.NotificationSender,
	drivers ports.DriverRepository,
	timeout time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Dispatcher{
		router:  router,
		senders: senders,
		drivers: drivers,
		timeout: timeout,
		logger:  logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch routes one transition event and sends the resulting notifications.
// The call returns as soon as the sends are scheduled; ctx is used only for
// broadcast expansion, each send runs under its own timeout so a cancelled
// request cannot cut deliveries short.
func (d *Dispatcher) Dispatch(ctx context.Context, event order.TransitionEvent) {
	for _, routed := range d.router.Route(event) {
		for _, notification := range d.expand(ctx, event, routed) {
			for _, sender := range d.senders {
				d.wg.Add(1)
				go d.send(sender, notification)
			}
		}
	}
}

// Wait blocks until every scheduled send has finished. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// expand turns a routed notification into per-recipient notifications.
// A driver broadcast becomes one notification per available driver.
func (d *Dispatcher) expand(
	ctx context.Context,
	event order.TransitionEvent,
	routed services.RoutedNotification,
) []ports.Notification {
	if !routed.Broadcast {
		if routed.RecipientID == nil {
			return nil
		}

		return []ports.Notification{{
			RecipientID:   *routed.RecipientID,
			RecipientRole: routed.Role,
			Title:         routed.Title,
			Body:          routed.Body,
			OrderID:       event.OrderID,
			OrderNumber:   event.OrderNumber,
		}}
	}

	available, err := d.drivers.GetAllAvailable(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to expand driver broadcast",
			"order_id", event.OrderID, "error", err)
		return nil
	}

	notifications := make([]ports.Notification, 0, len(available))
	for _, recipient := range available {
		notifications = append(notifications, ports.Notification{
			RecipientID:   recipient.ID(),
			RecipientRole: routed.Role,
			Title:         routed.Title,
			Body:          routed.Body,
			OrderID:       event.OrderID,
			OrderNumber:   event.OrderNumber,
		})
	}

	return notifications
}

func (d *Dispatcher) send(sender ports.NotificationSender, notification ports.Notification) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := sender.Send(ctx, notification); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(sender.Channel()).Inc()
		d.logger.ErrorContext(ctx, "Notification delivery failed",
			"channel", sender.Channel(),
			"recipient_id", notification.RecipientID,
			"order_number", notification.OrderNumber,
			"error", err)
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues(sender.Channel()).Inc()
	d.logger.DebugContext(ctx, "Notification delivered",
		"channel", sender.Channel(),
		"recipient_id", notification.RecipientID,
		"order_number", notification.OrderNumber)
}
