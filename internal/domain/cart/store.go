package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store owns one in-memory cart per user for the lifetime of the process.
// Carts are created lazily on first access and are never persisted; a
// restart starts every user with an empty cart.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{
		carts: make(map[uuid.UUID]*Cart),
	}
}

// Get returns the cart for the given user, creating it if necessary.
// The same *Cart is returned for every call with the same user ID.
func (s *Store) Get(userID uuid.UUID) *Cart {
	s.mu.RLock()
	c, ok := s.carts[userID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c = New()
	s.carts[userID] = c
	return c
}

// Len returns the number of carts currently held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
