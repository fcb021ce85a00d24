package queries

import (
	"context"

	"yumexpress/internal/core/domain/services"
)

// PreviewDeliveryFeeQueryHandler answers fee previews using the same pricer
// the accept flow uses, so a preview always matches the fee a vendor would
// fix on the order.
type PreviewDeliveryFeeQueryHandler struct {
	pricer services.DeliveryPricer
}

// NewPreviewDeliveryFeeQueryHandler creates a handler for fee previews.
func NewPreviewDeliveryFeeQueryHandler(pricer services.DeliveryPricer) PreviewDeliveryFeeQueryHandler {
	return PreviewDeliveryFeeQueryHandler{pricer: pricer}
}

// Handle computes the distance, fee and ETA between the two coordinates.
func (h PreviewDeliveryFeeQueryHandler) Handle(
	_ context.Context,
	query PreviewDeliveryFeeQuery,
) (PreviewDeliveryFeeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PreviewDeliveryFeeQueryResponse{}, err
	}

	quote, err := h.pricer.Quote(query.VendorLocation(), query.DeliveryLocation())
	if err != nil {
		return PreviewDeliveryFeeQueryResponse{}, err
	}

	return PreviewDeliveryFeeQueryResponse{
		DistanceKm: quote.DistanceKm,
		Fee:        quote.Fee,
		EtaMinutes: quote.EtaMinutes,
	}, nil
}
