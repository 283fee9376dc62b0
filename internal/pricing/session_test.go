package pricing

import (
	"testing"
	"time"
)

func TestSessionManagerCreateAndGet(t *testing.T) {
	m := NewSessionManager(30 * time.Minute)

	id, store := m.Create(NewTripContext(25), NewRateCard("v1", 12, 200))
	if id == "" || store == nil {
		t.Fatal("Create returned empty session")
	}

	got, ok := m.Get(id)
	if !ok || got != store {
		t.Fatal("Get did not return the created store")
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get returned a store for an unknown id")
	}

	// Sessions are isolated: each route search gets its own stores.
	id2, store2 := m.Create(NewTripContext(40), NewRateCard("v1", 12, 200))
	if id2 == id || store2 == store {
		t.Error("sessions share state")
	}
	store2.UpdateSelection("v1", SelectionUpdate{IsRoundTrip: boolPtr(true)})
	if sel := store.GetSelection("v1"); sel.IsRoundTrip {
		t.Error("edit in one session leaked into another")
	}
}

func TestSessionManagerSweep(t *testing.T) {
	m := NewSessionManager(time.Minute)

	id, _ := m.Create(NewTripContext(25), NewRateCard("v1", 12, 200))
	if dropped := m.Sweep(time.Now()); dropped != 0 {
		t.Errorf("fresh session swept, dropped = %d", dropped)
	}

	if dropped := m.Sweep(time.Now().Add(2 * time.Minute)); dropped != 1 {
		t.Errorf("expired session not swept, dropped = %d", dropped)
	}
	if _, ok := m.Get(id); ok {
		t.Error("swept session still reachable")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", m.Len())
	}
}

func TestSessionManagerGetDropsExpired(t *testing.T) {
	m := NewSessionManager(-time.Second)

	id, _ := m.Create(NewTripContext(25), NewRateCard("v1", 12, 200))
	if _, ok := m.Get(id); ok {
		t.Error("expired session returned from Get")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, expired session not dropped on Get", m.Len())
	}
}

func TestSessionManagerDiscard(t *testing.T) {
	m := NewSessionManager(30 * time.Minute)

	id, _ := m.Create(NewTripContext(25), NewRateCard("v1", 12, 200))
	m.Discard(id)
	if _, ok := m.Get(id); ok {
		t.Error("discarded session still reachable")
	}

	// Discarding twice is harmless.
	m.Discard(id)
}
