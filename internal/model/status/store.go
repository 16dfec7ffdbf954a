package status

import (
	"context"
	"sync"
)

// Store exposes status-check persistence for HTTP handlers.
type Store interface {
	Insert(ctx context.Context, check Check) error
	List(ctx context.Context, limit int) ([]Check, error)
}

// MemoryStore implements Store with an in-memory slice, suitable for
// development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Check
}

// NewMemoryStore returns an empty in-memory status store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert records a status check.
func (s *MemoryStore) Insert(_ context.Context, check Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, check)
	return nil
}

// List returns recorded checks in insertion order, capped at limit when positive.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]Check(nil), items...), nil
}
