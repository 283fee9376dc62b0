package pricing

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager maps quote-session ids to selection stores. A session is
// created when a route search returns a vehicle listing, kept alive while
// the user edits selections, and discarded on payment capture or after
// sitting idle past the TTL.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
}

type session struct {
	store     *Store
	expiresAt time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// Create registers a new quote session seeded with the listing's rate
// cards and returns its id alongside the store.
func (m *SessionManager) Create(trip TripContext, rates ...RateCard) (string, *Store) {
	id := uuid.NewString()
	store := NewStore(trip, rates...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{
		store:     store,
		expiresAt: time.Now().Add(m.ttl),
	}
	return id, store
}

// Get returns the store for a session id and extends its lease. An
// expired session is treated as absent.
func (m *SessionManager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	sess.expiresAt = time.Now().Add(m.ttl)
	return sess.store, true
}

// Discard drops a session outright.
func (m *SessionManager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Sweep removes expired sessions and reports how many were dropped.
func (m *SessionManager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, sess := range m.sessions {
		if now.After(sess.expiresAt) {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
