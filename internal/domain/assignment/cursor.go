package assignment

import (
	"context"
	"sync"
)

// CursorStore holds the per-department round-robin rotation pointer. It is
// the one legitimately stateful piece of the balancer, so it gets its own
// concurrency discipline instead of living as ambient global state.
//
// The cursor is not reset when a department's roster changes; the next pick
// simply lands on a different officer.
type CursorStore interface {
	// Next atomically advances and returns the department's cursor.
	Next(ctx context.Context, departmentID uint) (uint64, error)
}

// InMemoryCursorStore is a process-local cursor store for single-node
// deployments and tests. Multi-node deployments use the Redis-backed store in
// infrastructure/cache.
type InMemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[uint]uint64
}

func NewInMemoryCursorStore() *InMemoryCursorStore {
	return &InMemoryCursorStore{
		cursors: make(map[uint]uint64),
	}
}

func (s *InMemoryCursorStore) Next(ctx context.Context, departmentID uint) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[departmentID]++
	return s.cursors[departmentID], nil
}
