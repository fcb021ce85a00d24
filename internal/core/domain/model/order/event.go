package order

import (
	"time"

	"yumexpress/internal/core/domain/model/kernel"
)

// TransitionEvent records a single status change of an order. The aggregate
// accumulates events as transitions happen; the application layer drains them
// with PopEvents after a successful commit and hands each one to the
// notification dispatcher.
//
// The event carries enough context (party identifiers, order number) for
// downstream consumers to render notifications without reloading the order.
type TransitionEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	CustomerID  kernel.UUID
	VendorID    kernel.UUID
	DriverID    *kernel.UUID
	From        Status
	To          Status
	Actor       ActorRole
	ActorID     *kernel.UUID
	Note        string
	OccurredAt  time.Time
}
