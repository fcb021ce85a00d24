package queries

import (
	"context"
	"sort"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable order feed straight from
// the database. An order is claimable while it is in ready status and has no
// driver attached.
//
// Example:
//
//	handler := queries.NewGetAvailableOrdersQueryHandler(db)
//	query, _ := queries.NewGetAvailableOrdersQuery(nil)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to get available orders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d orders waiting for a driver\n", len(available))
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the claimable order
// feed. Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query and returns every ready, unclaimed order.
// With a driver location the results come nearest vendor first; without one
// they come newest first. Ties in distance keep the newest-first order.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			vendor_id,
			vendor_lat,
			vendor_lng,
			delivery_lat,
			delivery_lng,
			delivery_address,
			subtotal_amount,
			delivery_fee_amount,
			currency,
			created_at
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY created_at DESC
	`, order.Ready.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, vendorID             uuid.UUID
			orderNumber, address     string
			vendorLat, vendorLng     float64
			deliveryLat, deliveryLng float64
			subtotal, deliveryFee    decimal.Decimal
			currency                 string
			createdAt                time.Time
		)

		err = rows.Scan(
			&id,
			&orderNumber,
			&vendorID,
			&vendorLat,
			&vendorLng,
			&deliveryLat,
			&deliveryLng,
			&address,
			&subtotal,
			&deliveryFee,
			&currency,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp, respErr := buildAvailableOrderResponse(
			id, vendorID, orderNumber, address,
			vendorLat, vendorLng, deliveryLat, deliveryLng,
			subtotal, deliveryFee, currency, createdAt,
		)
		if respErr != nil {
			return nil, respErr
		}

		if location := query.DriverLocation(); location != nil {
			distance, distErr := location.DistanceKm(resp.VendorLocation)
			if distErr != nil {
				return nil, distErr
			}
			resp.DistanceKm = &distance
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if query.DriverLocation() != nil {
		sort.SliceStable(orders, func(i, j int) bool {
			return *orders[i].DistanceKm < *orders[j].DistanceKm
		})
	}

	return orders, nil
}

func buildAvailableOrderResponse(
	id, vendorID uuid.UUID,
	orderNumber, address string,
	vendorLat, vendorLng, deliveryLat, deliveryLng float64,
	subtotal, deliveryFee decimal.Decimal,
	currency string,
	createdAt time.Time,
) (GetAvailableOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	vendor, err := kernel.UUIDFromBytes(vendorID[:])
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	vendorLocation, err := kernel.NewGeoPoint(vendorLat, vendorLng)
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	deliveryLocation, err := kernel.NewGeoPoint(deliveryLat, deliveryLng)
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	subtotalMoney, err := kernel.NewMoney(subtotal, currency)
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	feeMoney, err := kernel.NewMoney(deliveryFee, currency)
	if err != nil {
		return GetAvailableOrdersQueryResponse{}, err
	}

	return GetAvailableOrdersQueryResponse{
		ID:               orderID,
		OrderNumber:      orderNumber,
		VendorID:         vendor,
		VendorLocation:   vendorLocation,
		DeliveryLocation: deliveryLocation,
		DeliveryAddress:  address,
		Subtotal:         subtotalMoney,
		DeliveryFee:      feeMoney,
		CreatedAt:        createdAt,
	}, nil
}
