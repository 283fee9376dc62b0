package pricing

import (
	"sync"
)

// Store owns the mapping from vehicle id to the user's current selection
// for one vehicle listing, and caches the latest fare per vehicle. Every
// update recomputes the cached fare synchronously, so a read immediately
// after an update always sees the new price.
//
// The store is the sole writer of selections; the estimator only reads
// them. Handlers touch a store concurrently, hence the lock.
type Store struct {
	mu         sync.RWMutex
	trip       TripContext
	rates      map[string]RateCard
	selections map[string]Selection
	fares      map[string]FareResult
}

// NewStore seeds a store with the trip context and the rate cards of the
// vehicles on the listing. Each seeded vehicle starts with the default
// selection and a precomputed fare.
func NewStore(trip TripContext, rates ...RateCard) *Store {
	s := &Store{
		trip:       trip,
		rates:      make(map[string]RateCard, len(rates)),
		selections: make(map[string]Selection, len(rates)),
		fares:      make(map[string]FareResult, len(rates)),
	}
	for _, rate := range rates {
		s.rates[rate.VehicleID] = rate
		s.selections[rate.VehicleID] = Selection{}
		s.fares[rate.VehicleID] = Estimate(rate, trip, Selection{})
	}
	return s
}

// AddVehicle seeds one more vehicle after construction.
func (s *Store) AddVehicle(rate RateCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[rate.VehicleID] = rate
	s.selections[rate.VehicleID] = Selection{}
	s.fares[rate.VehicleID] = Estimate(rate, s.trip, Selection{})
}

// Trip returns the trip context the store was seeded with.
func (s *Store) Trip() TripContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trip
}

// Rate returns the seeded rate card for a vehicle, or a zero card when
// the vehicle is unknown.
func (s *Store) Rate(vehicleID string) RateCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates[vehicleID]
}

// Has reports whether the vehicle was seeded into this store.
func (s *Store) Has(vehicleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rates[vehicleID]
	return ok
}

// GetSelection returns the current selection for a vehicle. Absence is
// not an error; an unseen vehicle gets the default selection.
func (s *Store) GetSelection(vehicleID string) Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selections[vehicleID]
}

// UpdateSelection merges a partial edit into the vehicle's selection and
// recomputes the cached fare before returning.
func (s *Store) UpdateSelection(vehicleID string, upd SelectionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selections[vehicleID]
	if upd.IsRoundTrip != nil {
		sel.IsRoundTrip = *upd.IsRoundTrip
	}
	if upd.StartAt != nil {
		sel.StartAt = *upd.StartAt
	}
	if upd.EndAt != nil {
		sel.EndAt = *upd.EndAt
	}

	s.selections[vehicleID] = sel
	s.fares[vehicleID] = Estimate(s.rates[vehicleID], s.trip, sel)
}

// GetPrice returns the cached fare for a vehicle, computing and caching
// it on first access.
func (s *Store) GetPrice(vehicleID string) FareResult {
	s.mu.RLock()
	fare, ok := s.fares[vehicleID]
	s.mu.RUnlock()
	if ok {
		return fare
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if fare, ok := s.fares[vehicleID]; ok {
		return fare
	}
	fare = Estimate(s.rates[vehicleID], s.trip, s.selections[vehicleID])
	s.fares[vehicleID] = fare
	return fare
}

// ValidateForSubmission gates a booking attempt on the vehicle's current
// selection. A partial or inverted time window blocks submission; the
// caller surfaces the reason next to the offending input.
func (s *Store) ValidateForSubmission(vehicleID string) Validation {
	return ValidateSelection(s.GetSelection(vehicleID))
}

// Discard resets a vehicle's selection and cached fare back to defaults.
// Called by the surrounding service on booking confirmation or listing
// teardown, never by the store's own logic.
func (s *Store) Discard(vehicleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rates[vehicleID]; !ok {
		delete(s.selections, vehicleID)
		delete(s.fares, vehicleID)
		return
	}
	s.selections[vehicleID] = Selection{}
	s.fares[vehicleID] = Estimate(s.rates[vehicleID], s.trip, Selection{})
}
