package pricing

import (
	"testing"
	"time"
)

func TestEstimateRulePriority(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		rate       RateCard
		trip       TripContext
		sel        Selection
		wantAmount float64
		wantBasis  Basis
	}{
		{
			name:       "distance priced",
			rate:       NewRateCard("v1", 12, 200),
			trip:       NewTripContext(25),
			sel:        Selection{},
			wantAmount: 300.00,
			wantBasis:  BasisDistance,
		},
		{
			name: "distance wins over a valid time window",
			rate: NewRateCard("v1", 12, 200),
			trip: NewTripContext(25),
			sel: Selection{
				StartAt: start,
				EndAt:   start.Add(5 * time.Hour),
			},
			wantAmount: 300.00,
			wantBasis:  BasisDistance,
		},
		{
			name: "duration priced when distance is unknown",
			rate: NewRateCard("v1", 12, 200),
			trip: NewTripContext(0),
			sel: Selection{
				StartAt: start,
				EndAt:   start.Add(3 * time.Hour),
			},
			wantAmount: 600.00,
			wantBasis:  BasisDuration,
		},
		{
			name: "duration priced when per-km rate is absent",
			rate: NewRateCard("v1", 0, 150),
			trip: NewTripContext(40),
			sel: Selection{
				StartAt: start,
				EndAt:   start.Add(2 * time.Hour),
			},
			wantAmount: 300.00,
			wantBasis:  BasisDuration,
		},
		{
			name:       "flat fallback on immediate booking without distance pricing",
			rate:       NewRateCard("v1", 0, 200),
			trip:       NewTripContext(0),
			sel:        Selection{},
			wantAmount: 200.00,
			wantBasis:  BasisFlatRate,
		},
		{
			name:       "flat fallback when distance is known but no per-km rate exists",
			rate:       NewRateCard("v1", 0, 180),
			trip:       NewTripContext(30),
			sel:        Selection{},
			wantAmount: 180.00,
			wantBasis:  BasisFlatRate,
		},
		{
			name:       "flat fallback on a partially edited window",
			rate:       NewRateCard("v1", 0, 120),
			trip:       NewTripContext(0),
			sel:        Selection{StartAt: start},
			wantAmount: 120.00,
			wantBasis:  BasisFlatRate,
		},
		{
			name: "flat fallback on an inverted window",
			rate: NewRateCard("v1", 0, 120),
			trip: NewTripContext(0),
			sel: Selection{
				StartAt: start,
				EndAt:   start.Add(-time.Hour),
			},
			wantAmount: 120.00,
			wantBasis:  BasisFlatRate,
		},
		{
			name:       "both rates zero yields zero, not an error",
			rate:       NewRateCard("v1", 0, 0),
			trip:       NewTripContext(25),
			sel:        Selection{},
			wantAmount: 0,
			wantBasis:  BasisFlatRate,
		},
		{
			name: "both rates zero with a valid window yields zero",
			rate: NewRateCard("v1", 0, 0),
			trip: NewTripContext(0),
			sel: Selection{
				StartAt: start,
				EndAt:   start.Add(4 * time.Hour),
			},
			wantAmount: 0,
			wantBasis:  BasisDuration,
		},
		{
			name:       "negative rates are clamped to absent at the boundary",
			rate:       NewRateCard("v1", -5, -10),
			trip:       NewTripContext(25),
			sel:        Selection{},
			wantAmount: 0,
			wantBasis:  BasisFlatRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.rate, tt.trip, tt.sel)
			if got.Amount != tt.wantAmount {
				t.Errorf("Estimate() amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.Basis != tt.wantBasis {
				t.Errorf("Estimate() basis = %v, want %v", got.Basis, tt.wantBasis)
			}
		})
	}
}

func TestEstimateHourCeiling(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rate := NewRateCard("v1", 0, 200)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"61 minutes bills two full hours", 61 * time.Minute, 400},
		{"exactly one hour bills one hour", time.Hour, 200},
		{"one minute bills the one hour minimum", time.Minute, 200},
		{"exactly two hours bills two hours", 2 * time.Hour, 400},
		{"two hours one second bills three hours", 2*time.Hour + time.Second, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{StartAt: start, EndAt: start.Add(tt.elapsed)}
			got := Estimate(rate, NewTripContext(0), sel)
			if got.Amount != tt.want {
				t.Errorf("Estimate() amount = %v, want %v", got.Amount, tt.want)
			}
			if got.Basis != BasisDuration {
				t.Errorf("Estimate() basis = %v, want %v", got.Basis, BasisDuration)
			}
		})
	}
}

func TestEstimateRoundTripDoubling(t *testing.T) {
	// 1 km at 0.125/km: the one-way amount rounds half away from zero to
	// 0.13, but the round trip must be round(2*0.125) = 0.25, not
	// 2*0.13 = 0.26. 0.125 is exactly representable, so the difference
	// is deterministic.
	rate := NewRateCard("v1", 0.125, 0)
	trip := NewTripContext(1)

	oneWay := Estimate(rate, trip, Selection{})
	if oneWay.Amount != 0.13 {
		t.Fatalf("one-way amount = %v, want 0.13", oneWay.Amount)
	}

	roundTrip := Estimate(rate, trip, Selection{IsRoundTrip: true})
	if roundTrip.Amount != 0.25 {
		t.Errorf("round-trip amount = %v, want 0.25 (doubled before rounding)", roundTrip.Amount)
	}

	// The concrete scenario from the product: 25 km at 12/km doubles
	// from 300.00 to 600.00.
	fare := Estimate(NewRateCard("v2", 12, 200), NewTripContext(25), Selection{IsRoundTrip: true})
	if fare.Amount != 600.00 {
		t.Errorf("round-trip amount = %v, want 600.00", fare.Amount)
	}
	if fare.Basis != BasisDistance {
		t.Errorf("round-trip basis = %v, want %v", fare.Basis, BasisDistance)
	}
}

func TestValidateSelection(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		sel        Selection
		wantValid  bool
		wantReason ErrorKind
	}{
		{"both empty is a valid immediate booking", Selection{}, true, ""},
		{
			"valid scheduled window",
			Selection{StartAt: start, EndAt: start.Add(2 * time.Hour)},
			true, "",
		},
		{
			"only start set",
			Selection{StartAt: start},
			false, IncompleteTimeWindow,
		},
		{
			"only end set",
			Selection{EndAt: start},
			false, IncompleteTimeWindow,
		},
		{
			"end before start",
			Selection{StartAt: start.Add(2 * time.Hour), EndAt: start},
			false, InvertedTimeWindow,
		},
		{
			"end equal to start",
			Selection{StartAt: start, EndAt: start},
			false, InvertedTimeWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSelection(tt.sel)
			if got.Valid != tt.wantValid {
				t.Errorf("ValidateSelection() valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("ValidateSelection() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestParseSelectionTime(t *testing.T) {
	got, err := ParseSelectionTime("2025-01-01T10:00")
	if err != nil {
		t.Fatalf("ParseSelectionTime() error = %v", err)
	}
	want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseSelectionTime() = %v, want %v", got, want)
	}

	if cleared, err := ParseSelectionTime(""); err != nil || !cleared.IsZero() {
		t.Errorf("ParseSelectionTime(\"\") = %v, %v, want zero time and nil", cleared, err)
	}

	if _, err := ParseSelectionTime("not-a-time"); err == nil {
		t.Error("ParseSelectionTime() expected error for malformed input")
	}

	if _, err := ParseSelectionTime("2025-01-01T10:00:00Z"); err != nil {
		t.Errorf("ParseSelectionTime() RFC3339 error = %v", err)
	}
}
