package oauth

import (
	"sync"
	"time"
)

const stateTTL = 5 * time.Minute

// StateStore issues and consumes single-use OAuth state values
type StateStore interface {
	Save(state string)
	Consume(state string) bool
}

// MemoryStateStore is an in-process state store with TTL eviction
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

// NewMemoryStateStore creates a new in-memory state store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Save records a state value for later consumption
func (s *MemoryStateStore) Save(state string) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(stateTTL)
}

// Consume removes a state value and reports whether it was valid. A state can
// be consumed at most once.
func (s *MemoryStateStore) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return s.now().Before(exp)
}
