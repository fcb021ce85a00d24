// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// efficient querying by status and driver assignment.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber         string          `gorm:"uniqueIndex"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;index"`
	VendorID            uuid.UUID       `gorm:"type:uuid;index"`
	DriverID            *uuid.UUID      `gorm:"type:uuid;index"`
	SubtotalAmount      decimal.Decimal `gorm:"type:numeric"`
	DeliveryFeeAmount   decimal.Decimal `gorm:"type:numeric"`
	Currency            string
	Vendor              GeoPointDTO `gorm:"embedded;embeddedPrefix:vendor_"`
	Delivery            GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryAddress     string
	DriverLat           *float64
	DriverLng           *float64
	Status              string `gorm:"index"`
	PaymentStatus       string
	PaymentRef          string
	CreatedAt           time.Time `gorm:"index"`
	EstimatedDeliveryAt *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates within the order table.
type GeoPointDTO struct {
	Lat float64
	Lng float64
}

// StatusHistoryDTO represents one row of the append-only status transition
// ledger. Rows are only ever inserted, never updated or deleted. Seq gives a
// total insertion order; transitions recorded in the same microsecond would
// otherwise tie on CreatedAt.
type StatusHistoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	FromStatus  string
	ToStatus    string
	ChangedBy   string
	ChangedByID *uuid.UUID `gorm:"type:uuid"`
	Note        string
	CreatedAt   time.Time
}

// TableName specifies the database table name for ledger entries.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional driver assignment and
// last known driver position.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var driverLat, driverLng *float64
	if location := aggregate.DriverLocation(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		driverLat = &lat
		driverLng = &lng
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		CustomerID:        aggregate.Customer().Bytes(),
		VendorID:          aggregate.Vendor().Bytes(),
		DriverID:          driverID,
		SubtotalAmount:    aggregate.Subtotal().Amount(),
		DeliveryFeeAmount: aggregate.DeliveryFee().Amount(),
		Currency:          aggregate.Subtotal().Currency(),
		Vendor: GeoPointDTO{
			Lat: aggregate.VendorLocation().Latitude(),
			Lng: aggregate.VendorLocation().Longitude(),
		},
		Delivery: GeoPointDTO{
			Lat: aggregate.DeliveryLocation().Latitude(),
			Lng: aggregate.DeliveryLocation().Longitude(),
		},
		DeliveryAddress:     aggregate.DeliveryAddress(),
		DriverLat:           driverLat,
		DriverLng:           driverLng,
		Status:              aggregate.Status().String(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		PaymentRef:          aggregate.PaymentRef(),
		CreatedAt:           aggregate.CreatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		PickedUpAt:          aggregate.PickedUpAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO and its ledger rows to an order domain
// aggregate. Reconstructs the complete aggregate state using RestoreOrder.
func toDomain(dto OrderDTO, historyDTOs []StatusHistoryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFeeAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	vendorLocation, err := kernel.NewGeoPoint(dto.Vendor.Lat, dto.Vendor.Lng)
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := kernel.NewGeoPoint(dto.Delivery.Lat, dto.Delivery.Lng)
	if err != nil {
		return nil, err
	}

	var driverLocation *kernel.GeoPoint
	if dto.DriverLat != nil && dto.DriverLng != nil {
		location, locErr := kernel.NewGeoPoint(*dto.DriverLat, *dto.DriverLng)
		if locErr != nil {
			return nil, locErr
		}
		driverLocation = &location
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusHistory, 0, len(historyDTOs))
	for _, historyDTO := range historyDTOs {
		entry, entryErr := historyToDomain(historyDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		vendorID,
		driverID,
		subtotal,
		deliveryFee,
		vendorLocation,
		deliveryLocation,
		dto.DeliveryAddress,
		driverLocation,
		status,
		paymentStatus,
		dto.PaymentRef,
		dto.CreatedAt,
		dto.EstimatedDeliveryAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		history,
	)
}

// historyFromDomain converts one ledger entry to its database representation.
func historyFromDomain(record order.StatusHistory) StatusHistoryDTO {
	var changedByID *uuid.UUID
	if record.ChangedByID != nil {
		raw := record.ChangedByID.Bytes()
		changedByID = &raw
	}

	return StatusHistoryDTO{
		ID:          record.ID.Bytes(),
		OrderID:     record.OrderID.Bytes(),
		FromStatus:  record.FromStatus.String(),
		ToStatus:    record.ToStatus.String(),
		ChangedBy:   record.ChangedBy.String(),
		ChangedByID: changedByID,
		Note:        record.Note,
		CreatedAt:   record.CreatedAt,
	}
}

// historyToDomain converts one ledger row back to its domain representation.
func historyToDomain(dto StatusHistoryDTO) (order.StatusHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusHistory{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusHistory{}, err
	}

	fromStatus, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return order.StatusHistory{}, err
	}

	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return order.StatusHistory{}, err
	}

	changedBy, err := order.ActorRoleFromString(dto.ChangedBy)
	if err != nil {
		return order.StatusHistory{}, err
	}

	var changedByID *kernel.UUID
	if dto.ChangedByID != nil {
		actorID, actorErr := kernel.UUIDFromBytes((*dto.ChangedByID)[:])
		if actorErr != nil {
			return order.StatusHistory{}, actorErr
		}
		changedByID = &actorID
	}

	return order.StatusHistory{
		ID:          id,
		OrderID:     orderID,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
		ChangedBy:   changedBy,
		ChangedByID: changedByID,
		Note:        dto.Note,
		CreatedAt:   dto.CreatedAt,
	}, nil
}
