package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions hands out one Store per session key, so concurrent requests of the
// same session share state while sessions stay isolated from each other.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

func (s *Sessions) Get(key string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stores[key]
	if !ok {
		st = NewStore()
		s.stores[key] = st
	}
	return st
}

// Drop forgets a session's cart. Carts are memory-only and lost on session end.
func (s *Sessions) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, key)
}

// GuestKey issues a session handle for visitors that are not signed in yet.
func GuestKey() string {
	return "guest-" + uuid.NewString()
}
