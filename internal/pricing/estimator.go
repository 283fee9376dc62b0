// Package pricing computes booking fares from vehicle rate cards, trip
// distance and the user's per-vehicle selection, and owns the selection
// state for an active vehicle listing.
package pricing

import (
	"math"
	"time"
)

// Estimate deterministically computes the fare for one vehicle. It is a
// pure function: no I/O, no mutation, and it never fails. Missing or
// degenerate inputs fall through the rule chain down to a zero amount,
// which is valid output.
//
// Rule order, first match wins:
//  1. distance-priced: known distance and a per-km rate
//  2. duration-priced: a complete, ordered time window billed in whole
//     hours (partial hours round up, minimum one hour)
//  3. flat fallback: a single unit of the hourly rate, so an incomplete
//     selection still shows a defined price
//
// Estimate assumes the selection was validated by the store; it does not
// re-check the time window beyond picking the applicable rule.
func Estimate(rate RateCard, trip TripContext, sel Selection) FareResult {
	amount, basis := baseAmount(rate, trip, sel)
	if sel.IsRoundTrip {
		// Double before rounding so the round trip price is
		// round(2*A), not 2*round(A).
		amount *= 2
	}
	return FareResult{Amount: roundAmount(amount), Basis: basis}
}

func baseAmount(rate RateCard, trip TripContext, sel Selection) (float64, Basis) {
	if trip.DistanceKm > 0 && rate.PerKm > 0 {
		return trip.DistanceKm * rate.PerKm, BasisDistance
	}
	if sel.Scheduled() {
		return float64(billableHours(sel.StartAt, sel.EndAt)) * rate.PerHour, BasisDuration
	}
	return rate.PerHour, BasisFlatRate
}

// billableHours bills any started hour as a full hour. Ceiling here is a
// business rule, not a precision artifact.
func billableHours(start, end time.Time) int64 {
	hours := int64(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

// roundAmount rounds currency to two decimal places, half away from zero.
func roundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
