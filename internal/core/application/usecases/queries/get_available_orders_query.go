package queries

import (
	"errors"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/guard"
)

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
)

// GetAvailableOrdersQuery retrieves ready orders that no driver has claimed
// yet. When a driver location is supplied the results are sorted nearest
// vendor first, otherwise newest order first.
//
// Example:
//
//	location, _ := kernel.NewGeoPoint(-6.7924, 39.2083)
//	query, _ := queries.NewGetAvailableOrdersQuery(&location)
//	handler := queries.NewGetAvailableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("order #%s pickup %.2f km away\n", o.OrderNumber, *o.DistanceKm)
//	}
type GetAvailableOrdersQuery struct {
	driverLocation *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the claimable order feed.
// The driver location is optional; pass nil to get newest-first ordering.
func NewGetAvailableOrdersQuery(driverLocation *kernel.GeoPoint) (GetAvailableOrdersQuery, error) {
	query := GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}

	if driverLocation != nil {
		if err := driverLocation.Validate(); err != nil {
			return GetAvailableOrdersQuery{}, err
		}

		location := *driverLocation
		query.driverLocation = &location
	}

	return query, nil
}

// DriverLocation returns the requesting driver's location, or nil when the
// caller did not report one.
func (q GetAvailableOrdersQuery) DriverLocation() *kernel.GeoPoint {
	return q.driverLocation
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableOrdersQueryIsNotConstructed if validation fails.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse represents one claimable order. DistanceKm
// is the driver-to-vendor distance and is set only when the query carried a
// driver location.
type GetAvailableOrdersQueryResponse struct {
	ID               kernel.UUID
	OrderNumber      string
	VendorID         kernel.UUID
	VendorLocation   kernel.GeoPoint
	DeliveryLocation kernel.GeoPoint
	DeliveryAddress  string
	Subtotal         kernel.Money
	DeliveryFee      kernel.Money
	DistanceKm       *float64
	CreatedAt        time.Time
}
