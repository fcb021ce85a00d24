package queries

import (
	"errors"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the append-only status transition ledger of
// a single order, oldest entry first.
//
// Example:
//
//	query, _ := queries.NewGetOrderHistoryQuery(orderID)
//	handler := queries.NewGetOrderHistoryQueryHandler(db)
//
//	trail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//
//	for _, entry := range trail {
//	    fmt.Printf("%s -> %s by %s\n", entry.FromStatus, entry.ToStatus, entry.ChangedBy)
//	}
type GetOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's audit trail.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order whose trail is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse represents one ledger entry. ChangedByID is
// nil for transitions performed by the system, such as automatic stale-order
// cancellation.
type GetOrderHistoryQueryResponse struct {
	FromStatus  string
	ToStatus    string
	ChangedBy   string
	ChangedByID *kernel.UUID
	Note        string
	CreatedAt   time.Time
}
