package http

import "time"

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RejectOrderRequest carries the vendor's rejection reason.
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

// UpdateLocationRequest carries a driver position report.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoPointResponse is a coordinate pair in responses.
type GeoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AvailableOrderResponse is one entry of the claimable order feed.
// DistanceKm is present only when the caller supplied a location.
type AvailableOrderResponse struct {
	ID               string           `json:"id"`
	OrderNumber      string           `json:"order_number"`
	VendorID         string           `json:"vendor_id"`
	VendorLocation   GeoPointResponse `json:"vendor_location"`
	DeliveryLocation GeoPointResponse `json:"delivery_location"`
	DeliveryAddress  string           `json:"delivery_address"`
	Subtotal         string           `json:"subtotal"`
	DeliveryFee      string           `json:"delivery_fee"`
	Currency         string           `json:"currency"`
	DistanceKm       *float64         `json:"distance_km,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// HistoryEntryResponse is one row of an order's status transition ledger.
type HistoryEntryResponse struct {
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ChangedBy   string    `json:"changed_by"`
	ChangedByID *string   `json:"changed_by_id,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderResponse is the full order representation returned by the mutating
// lifecycle endpoints.
type OrderResponse struct {
	ID                  string            `json:"id"`
	OrderNumber         string            `json:"order_number"`
	CustomerID          string            `json:"customer_id"`
	VendorID            string            `json:"vendor_id"`
	DriverID            *string           `json:"driver_id,omitempty"`
	Status              string            `json:"status"`
	PaymentStatus       string            `json:"payment_status"`
	Subtotal            string            `json:"subtotal"`
	DeliveryFee         string            `json:"delivery_fee"`
	Total               string            `json:"total"`
	Currency            string            `json:"currency"`
	VendorLocation      GeoPointResponse  `json:"vendor_location"`
	DeliveryLocation    GeoPointResponse  `json:"delivery_location"`
	DeliveryAddress     string            `json:"delivery_address"`
	DriverLocation      *GeoPointResponse `json:"driver_location,omitempty"`
	EstimatedDeliveryAt *time.Time        `json:"estimated_delivery_at,omitempty"`
	PickedUpAt          *time.Time        `json:"picked_up_at,omitempty"`
	DeliveredAt         *time.Time        `json:"delivered_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
}

// OrderStatusResponse pairs the updated order with a human-readable
// message describing what just happened to it.
type OrderStatusResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// DeliveryPreviewResponse is the quoted fee for a prospective order.
type DeliveryPreviewResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Fee        string  `json:"fee"`
	Currency   string  `json:"currency"`
	EtaMinutes int     `json:"eta_minutes"`
}
