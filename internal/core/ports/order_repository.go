package ports

import (
	"context"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order including its status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyUnclaimed retrieves orders in ready status with no driver,
	// oldest first. These are the orders a driver may claim.
	GetAllReadyUnclaimed(ctx context.Context) ([]*order.Order, error)

	// GetAllStalePending retrieves pending orders created before the cutoff.
	// Used by the background job that cancels orders vendors never answered.
	GetAllStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// ClaimForDriver atomically attaches a driver to a ready, unclaimed
	// order with a single conditional update. Exactly one of any number of
	// concurrent claimers wins.
	//
	// Returns:
	//   - nil when this driver won the claim
	//   - an error wrapping errs.ErrAlreadyClaimed when another driver got
	//     there first
	//   - an error wrapping errs.ErrInvalidTransition when the order is not
	//     in ready status
	//   - an error wrapping errs.ErrObjectNotFound when no such order exists
	ClaimForDriver(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID, pickedUpAt time.Time) error

	// AppendHistory persists one status transition audit record.
	// Called in the same transaction as the order mutation it records.
	AppendHistory(ctx context.Context, record order.StatusHistory) error

	// GetHistory retrieves the audit trail of an order, oldest first.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistory, error)
}
