package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"zafarpos/backend/internal/ledger"
)

// Manager tracks one invoice ledger per browser session. Sessions that sit
// idle past the TTL are pruned lazily on the next access, so no background
// sweeper is needed.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
	now      func() time.Time
}

type entry struct {
	ledger     *ledger.Ledger
	mu         sync.Mutex
	lastAccess time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create starts a fresh session with an empty invoice and returns its ID.
func (m *Manager) Create() string {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prune()
	m.sessions[id] = &entry{
		ledger:     ledger.New(),
		lastAccess: m.now(),
	}
	return id
}

// With runs fn against the session's ledger while holding the session lock,
// so every mutate-and-recompute cycle is atomic per session. It returns
// false if the session is unknown or expired.
func (m *Manager) With(id string, fn func(*ledger.Ledger) error) (bool, error) {
	m.mu.Lock()
	m.prune()
	e, ok := m.sessions[id]
	if ok {
		e.lastAccess = m.now()
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return true, fn(e.ledger)
}

// Drop removes a session immediately. Unknown IDs are a no-op.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions after pruning.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	return len(m.sessions)
}

// prune drops expired sessions. Caller holds m.mu.
func (m *Manager) prune() {
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.lastAccess.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
