package pricing

import (
	"math"
	"time"
)

// Basis identifies which pricing rule produced a fare amount.
type Basis string

const (
	BasisDistance Basis = "distance"
	BasisDuration Basis = "duration"
	BasisFlatRate Basis = "flat-rate"
)

// ErrorKind classifies a selection that cannot proceed to payment.
type ErrorKind string

const (
	IncompleteTimeWindow ErrorKind = "incomplete_time_window"
	InvertedTimeWindow   ErrorKind = "inverted_time_window"
)

// RateCard carries the per-unit charges attached to a vehicle. Zero means
// the rate is absent. Build one through NewRateCard so the estimator never
// sees negative or non-finite values.
type RateCard struct {
	VehicleID string  `json:"vehicle_id"`
	PerKm     float64 `json:"price_per_km"`
	PerHour   float64 `json:"price_per_hour"`
}

// TripContext is the one-way distance between source and destination.
// Zero means the distance is unknown.
type TripContext struct {
	DistanceKm float64 `json:"distance_km"`
}

// Selection is a user's current booking choice for one vehicle. A zero
// time means the field is empty; both empty is an immediate booking, both
// set with EndAt after StartAt is a scheduled booking.
type Selection struct {
	IsRoundTrip bool      `json:"is_round_trip"`
	StartAt     time.Time `json:"start_at,omitempty"`
	EndAt       time.Time `json:"end_at,omitempty"`
}

// SelectionUpdate is a partial edit; nil fields keep their current value.
// Clearing a time field is done by pointing at the zero time.
type SelectionUpdate struct {
	IsRoundTrip *bool      `json:"is_round_trip,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
}

// FareResult is a computed price, rounded to two decimal places.
type FareResult struct {
	Amount float64 `json:"amount"`
	Basis  Basis   `json:"basis"`
}

// Validation is the submission gate's verdict. Reason is set only when
// Valid is false.
type Validation struct {
	Valid  bool      `json:"valid"`
	Reason ErrorKind `json:"reason,omitempty"`
}

func NewRateCard(vehicleID string, perKm, perHour float64) RateCard {
	return RateCard{
		VehicleID: vehicleID,
		PerKm:     nonNegative(perKm),
		PerHour:   nonNegative(perHour),
	}
}

func NewTripContext(distanceKm float64) TripContext {
	return TripContext{DistanceKm: nonNegative(distanceKm)}
}

// nonNegative clamps negative and non-finite rates to "absent". External
// rate data is only trusted after passing through here.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (s Selection) startSet() bool { return !s.StartAt.IsZero() }
func (s Selection) endSet() bool   { return !s.EndAt.IsZero() }

// Immediate reports whether the selection has no explicit time window.
func (s Selection) Immediate() bool { return !s.startSet() && !s.endSet() }

// Scheduled reports whether the selection has a complete, ordered window.
func (s Selection) Scheduled() bool {
	return s.startSet() && s.endSet() && s.EndAt.After(s.StartAt)
}

// ValidateSelection is the single gate a selection must pass before a
// booking attempt proceeds to payment. Failures are reported, never thrown.
func ValidateSelection(sel Selection) Validation {
	switch {
	case sel.startSet() != sel.endSet():
		return Validation{Reason: IncompleteTimeWindow}
	case sel.startSet() && !sel.EndAt.After(sel.StartAt):
		return Validation{Reason: InvertedTimeWindow}
	}
	return Validation{Valid: true}
}

// selectionTimeLayouts accepts RFC3339 timestamps as well as the shorter
// form HTML datetime-local inputs submit.
var selectionTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseSelectionTime parses a time field at the boundary where external
// data enters the pricing core. An empty string is a cleared field, not
// an error.
func ParseSelectionTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range selectionTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
