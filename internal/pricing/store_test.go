package pricing

import (
	"testing"
	"time"
)

func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestStoreDefaultsAndSeededPrice(t *testing.T) {
	s := NewStore(NewTripContext(25), NewRateCard("v1", 12, 200))

	sel := s.GetSelection("v1")
	if sel.IsRoundTrip || !sel.StartAt.IsZero() || !sel.EndAt.IsZero() {
		t.Errorf("seeded selection not default: %+v", sel)
	}

	fare := s.GetPrice("v1")
	if fare.Amount != 300.00 || fare.Basis != BasisDistance {
		t.Errorf("seeded price = %+v, want 300.00 distance", fare)
	}

	// Absence is a valid state with a well-defined default.
	if sel := s.GetSelection("unknown"); sel.IsRoundTrip || !sel.StartAt.IsZero() {
		t.Errorf("unknown vehicle selection not default: %+v", sel)
	}
}

func TestStoreUpdateRecomputesSynchronously(t *testing.T) {
	s := NewStore(NewTripContext(25), NewRateCard("v1", 12, 200))

	s.UpdateSelection("v1", SelectionUpdate{IsRoundTrip: boolPtr(true)})
	if fare := s.GetPrice("v1"); fare.Amount != 600.00 {
		t.Errorf("price after round-trip toggle = %v, want 600.00", fare.Amount)
	}

	s.UpdateSelection("v1", SelectionUpdate{IsRoundTrip: boolPtr(false)})
	if fare := s.GetPrice("v1"); fare.Amount != 300.00 {
		t.Errorf("price after toggle back = %v, want 300.00", fare.Amount)
	}
}

func TestStorePartialMerge(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	s := NewStore(NewTripContext(0), NewRateCard("v1", 0, 200))

	s.UpdateSelection("v1", SelectionUpdate{StartAt: timePtr(start)})
	sel := s.GetSelection("v1")
	if !sel.StartAt.Equal(start) || !sel.EndAt.IsZero() {
		t.Fatalf("after partial update: %+v", sel)
	}

	s.UpdateSelection("v1", SelectionUpdate{EndAt: timePtr(end)})
	sel = s.GetSelection("v1")
	if !sel.StartAt.Equal(start) || !sel.EndAt.Equal(end) {
		t.Fatalf("merge dropped a field: %+v", sel)
	}
	if fare := s.GetPrice("v1"); fare.Amount != 400.00 || fare.Basis != BasisDuration {
		t.Errorf("scheduled price = %+v, want 400.00 duration", fare)
	}

	// Clearing both fields returns to an immediate booking.
	var zero time.Time
	s.UpdateSelection("v1", SelectionUpdate{StartAt: timePtr(zero), EndAt: timePtr(zero)})
	if fare := s.GetPrice("v1"); fare.Basis != BasisFlatRate {
		t.Errorf("cleared selection basis = %v, want %v", fare.Basis, BasisFlatRate)
	}
}

func TestStoreValidateForSubmission(t *testing.T) {
	s := NewStore(NewTripContext(10), NewRateCard("v1", 12, 200))

	mustParse := func(v string) *time.Time {
		tm, err := ParseSelectionTime(v)
		if err != nil {
			t.Fatalf("parse %q: %v", v, err)
		}
		return &tm
	}

	// Both empty: valid immediate booking.
	if v := s.ValidateForSubmission("v1"); !v.Valid {
		t.Errorf("immediate selection invalid: %+v", v)
	}

	// Exactly one time set.
	s.UpdateSelection("v1", SelectionUpdate{StartAt: mustParse("2025-01-01T10:00")})
	if v := s.ValidateForSubmission("v1"); v.Valid || v.Reason != IncompleteTimeWindow {
		t.Errorf("partial window verdict = %+v, want %v", v, IncompleteTimeWindow)
	}

	// Inverted window.
	s.UpdateSelection("v1", SelectionUpdate{
		StartAt: mustParse("2025-01-01T12:00"),
		EndAt:   mustParse("2025-01-01T10:00"),
	})
	if v := s.ValidateForSubmission("v1"); v.Valid || v.Reason != InvertedTimeWindow {
		t.Errorf("inverted window verdict = %+v, want %v", v, InvertedTimeWindow)
	}

	// Completed window.
	s.UpdateSelection("v1", SelectionUpdate{EndAt: mustParse("2025-01-01T14:00")})
	if v := s.ValidateForSubmission("v1"); !v.Valid {
		t.Errorf("completed window invalid: %+v", v)
	}
}

func TestStorePriceIdempotence(t *testing.T) {
	s := NewStore(NewTripContext(3.33), NewRateCard("v1", 150, 0))

	first := s.GetPrice("v1")
	second := s.GetPrice("v1")
	if first != second {
		t.Errorf("repeated GetPrice drifted: %+v then %+v", first, second)
	}

	// First access for an unseeded vehicle computes and caches.
	a := s.GetPrice("late")
	b := s.GetPrice("late")
	if a != b {
		t.Errorf("cached result drifted for unseeded vehicle: %+v then %+v", a, b)
	}
}

func TestStoreDiscardResetsToDefaults(t *testing.T) {
	s := NewStore(NewTripContext(25), NewRateCard("v1", 12, 200))

	s.UpdateSelection("v1", SelectionUpdate{IsRoundTrip: boolPtr(true)})
	if fare := s.GetPrice("v1"); fare.Amount != 600.00 {
		t.Fatalf("precondition failed: %v", fare.Amount)
	}

	s.Discard("v1")
	if sel := s.GetSelection("v1"); sel.IsRoundTrip {
		t.Errorf("selection survived discard: %+v", sel)
	}
	if fare := s.GetPrice("v1"); fare.Amount != 300.00 {
		t.Errorf("price after discard = %v, want reseeded 300.00", fare.Amount)
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(time.Hour)

	id, store := m.Create(NewTripContext(25), NewRateCard("v1", 12, 200))
	if store == nil || id == "" {
		t.Fatal("Create returned empty session")
	}

	got, ok := m.Get(id)
	if !ok || got != store {
		t.Fatalf("Get(%q) = %v, %v", id, got, ok)
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("Get on unknown id reported a session")
	}

	m.Discard(id)
	if _, ok := m.Get(id); ok {
		t.Error("session survived Discard")
	}
}

func TestSessionManagerSweepMultiple(t *testing.T) {
	m := NewSessionManager(time.Minute)
	m.Create(NewTripContext(10), NewRateCard("v1", 12, 0))
	m.Create(NewTripContext(10), NewRateCard("v2", 9, 0))

	if dropped := m.Sweep(time.Now()); dropped != 0 {
		t.Errorf("Sweep dropped %d live sessions", dropped)
	}
	if dropped := m.Sweep(time.Now().Add(2 * time.Minute)); dropped != 2 {
		t.Errorf("Sweep dropped %d, want 2", dropped)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", m.Len())
	}
}
