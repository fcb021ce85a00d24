// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence, converting between the driver domain aggregate and its
// database representation.
package driverrepo

import (
	"yumexpress/internal/core/domain/model/driver"
	"yumexpress/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Availability is indexed because the ready-order broadcast
// selects on it.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Phone       string
	Email       string
	IsAvailable bool `gorm:"index"`
	Lat         *float64
	Lng         *float64
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var lat, lng *float64
	if location := aggregate.Location(); location != nil {
		latitude := location.Latitude()
		longitude := location.Longitude()
		lat = &latitude
		lng = &longitude
	}

	return DriverDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Phone:       aggregate.Phone(),
		Email:       aggregate.Email(),
		IsAvailable: aggregate.IsAvailable(),
		Lat:         lat,
		Lng:         lng,
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, dto.Email, dto.IsAvailable, location)
}
