package kernel

import (
	"errors"
	"fmt"
	"math"

	"yumexpress/internal/pkg/errs"
	"yumexpress/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax float64 = 180

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position with validated coordinates.
// GeoPoint is an immutable value object; the zero value is invalid and fails
// validation, so instances must be created through NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-6.7924, 39.2083)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(-6.792400,39.208300)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must lie within [-90, 90] and longitude within [-180, 180];
// an out-of-range coordinate yields a validation error.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was constructed via NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a representation in the form "GeoPoint(lat,long)" with six
// decimal places, matching the precision coordinates are stored with.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula. The result is the raw distance;
// rounding for display or pricing is the caller's concern.
//
// Example:
//
//	vendor, _ := kernel.NewGeoPoint(-6.7924, 39.2083)
//	customer, _ := kernel.NewGeoPoint(-6.8160, 39.2803)
//	km, _ := vendor.DistanceKm(customer) // ~8.3
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLong := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c, nil
}

// setLatitude sets the latitude with range validation.
// Note: pointer receiver is used intentionally for self-encapsulated
// validation during construction; all public methods use value receivers.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}
