package services

import (
	"math"

	"yumexpress/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	// feeCurrency is the currency all delivery fees are quoted in.
	feeCurrency = "TSH"

	// nearDistanceLimitKm is the distance up to which the near rate applies.
	nearDistanceLimitKm = 3.0

	// nearRatePerKm is the per-kilometer rate for short deliveries.
	nearRatePerKm = 2000

	// farRatePerKm is the per-kilometer rate once the distance exceeds
	// the near limit. The lower rate keeps long deliveries affordable.
	farRatePerKm = 700

	// minutesPerKm is the travel time factor used in the delivery estimate.
	minutesPerKm = 3

	// defaultBasePrepMinutes is the vendor preparation time assumed when
	// no explicit value is configured.
	defaultBasePrepMinutes = 20
)

// Quote is the result of pricing one delivery: the distance between vendor
// and customer, the fee for that distance, and the estimated minutes until
// the order reaches the customer.
type Quote struct {
	// DistanceKm is the great-circle distance rounded to two decimals.
	DistanceKm float64

	// Fee is the delivery fee for the distance.
	Fee kernel.Money

	// EtaMinutes is preparation time plus travel time.
	EtaMinutes int
}

// DeliveryPricer is a domain service that quotes delivery fee and estimated
// delivery time for an order. Pricing is purely a function of the distance
// between the vendor and the delivery location.
//
// Business rules:
//   - Distance is rounded to two decimals before pricing
//   - Distances up to 3 km are charged at 2000 TSH per kilometer
//   - Longer distances are charged at 700 TSH per kilometer for the whole trip
//   - The estimate is preparation time plus three minutes per kilometer
//
// Example usage:
//
//	pricer := services.NewDeliveryPricer(20)
//	quote, err := pricer.Quote(vendorLocation, deliveryLocation)
//	if err != nil {
//	    // Handle invalid locations
//	}
//	// quote.Fee, quote.EtaMinutes
type DeliveryPricer struct {
	basePrepMinutes int
}

// NewDeliveryPricer creates a DeliveryPricer with the given vendor
// preparation time in minutes. Non-positive values fall back to the default.
func NewDeliveryPricer(basePrepMinutes int) DeliveryPricer {
	if basePrepMinutes <= 0 {
		basePrepMinutes = defaultBasePrepMinutes
	}
	return DeliveryPricer{basePrepMinutes: basePrepMinutes}
}

// Quote prices the delivery from the vendor location to the delivery
// location.
//
// Returns:
//   - Quote: distance, fee and estimated minutes
//   - error: if either location is invalid
func (p DeliveryPricer) Quote(from, to kernel.GeoPoint) (Quote, error) {
	distanceKm, err := from.DistanceKm(to)
	if err != nil {
		return Quote{}, err
	}

	return p.QuoteDistance(distanceKm)
}

// QuoteDistance prices a delivery of a known distance in kilometers.
// Negative distances are rejected.
func (p DeliveryPricer) QuoteDistance(distanceKm float64) (Quote, error) {
	distanceKm = roundKm(distanceKm)

	fee, err := p.feeFor(distanceKm)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		DistanceKm: distanceKm,
		Fee:        fee,
		EtaMinutes: p.basePrepMinutes + int(distanceKm*minutesPerKm),
	}, nil
}

// feeFor converts a rounded distance into a fee. The whole trip is charged
// at a single rate; crossing the near limit switches every kilometer to the
// far rate, not just the kilometers beyond it.
func (p DeliveryPricer) feeFor(distanceKm float64) (kernel.Money, error) {
	rate := int64(nearRatePerKm)
	if distanceKm > nearDistanceLimitKm {
		rate = farRatePerKm
	}

	amount := decimal.NewFromFloat(distanceKm).
		Mul(decimal.NewFromInt(rate)).
		Round(2)

	return kernel.NewMoney(amount, feeCurrency)
}

// roundKm rounds a raw distance to two decimals.
func roundKm(distanceKm float64) float64 {
	return math.Round(distanceKm*100) / 100
}
