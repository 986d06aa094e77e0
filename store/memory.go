package store

import (
	"context"
	"sync"

	"pagesmith/types"
)

const DefaultMemoryCapacity = 500

// MemoryStore keeps the most recent generations in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	gens []types.Generation
	cap  int
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{cap: capacity}
}

func (m *MemoryStore) Record(_ context.Context, g types.Generation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gens = append(m.gens, g)
	if over := len(m.gens) - m.cap; over > 0 {
		m.gens = append(m.gens[:0:0], m.gens[over:]...)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (m *MemoryStore) Recent(_ context.Context, limit int) ([]types.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.gens) {
		limit = len(m.gens)
	}
	out := make([]types.Generation, 0, limit)
	for i := len(m.gens) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.gens[i])
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
