package queries

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/guard"
)

var (
	ErrPreviewDeliveryFeeQueryIsNotConstructed = errors.New(
		"PreviewDeliveryFeeQuery must be created via NewPreviewDeliveryFeeQuery constructor",
	)
)

// PreviewDeliveryFeeQuery computes the delivery fee and ETA for a prospective
// order before it is placed. The preview is a pure calculation over the two
// coordinates and never touches storage.
//
// Example:
//
//	vendor, _ := kernel.NewGeoPoint(-6.7924, 39.2083)
//	customer, _ := kernel.NewGeoPoint(-6.8160, 39.2803)
//	query, _ := queries.NewPreviewDeliveryFeeQuery(vendor, customer)
//	handler := queries.NewPreviewDeliveryFeeQueryHandler(pricer)
//
//	preview, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to preview delivery fee: %w", err)
//	}
//
//	fmt.Printf("%.2f km, fee %s, about %d minutes\n",
//	    preview.DistanceKm, preview.Fee, preview.EtaMinutes)
type PreviewDeliveryFeeQuery struct {
	vendorLocation   kernel.GeoPoint
	deliveryLocation kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewPreviewDeliveryFeeQuery creates a fee preview query for a delivery from
// the vendor location to the customer location.
func NewPreviewDeliveryFeeQuery(
	vendorLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
) (PreviewDeliveryFeeQuery, error) {
	if err := errors.Join(vendorLocation.Validate(), deliveryLocation.Validate()); err != nil {
		return PreviewDeliveryFeeQuery{}, err
	}

	return PreviewDeliveryFeeQuery{
		vendorLocation:   vendorLocation,
		deliveryLocation: deliveryLocation,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// VendorLocation returns the pickup coordinates.
func (q PreviewDeliveryFeeQuery) VendorLocation() kernel.GeoPoint {
	return q.vendorLocation
}

// DeliveryLocation returns the drop-off coordinates.
func (q PreviewDeliveryFeeQuery) DeliveryLocation() kernel.GeoPoint {
	return q.deliveryLocation
}

// Validate ensures the query was created through the constructor.
// Returns ErrPreviewDeliveryFeeQueryIsNotConstructed if validation fails.
func (q PreviewDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrPreviewDeliveryFeeQueryIsNotConstructed)
}

// PreviewDeliveryFeeQueryResponse represents the quoted distance, fee and
// estimated minutes until delivery.
type PreviewDeliveryFeeQueryResponse struct {
	DistanceKm float64
	Fee        kernel.Money
	EtaMinutes int
}
