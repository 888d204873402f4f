package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const rotationCursorKeyPrefix = "assignment:rotation:cursor:"

// RotationCursorStore keeps the per-department round-robin cursor in Redis so
// rotation position survives restarts and is shared across instances.
type RotationCursorStore struct {
	client *redis.Client
}

// NewRotationCursorStore creates a new RotationCursorStore instance.
func NewRotationCursorStore(client *redis.Client) *RotationCursorStore {
	return &RotationCursorStore{client: client}
}

// Next atomically advances the department cursor and returns its new value.
// The first call for a department returns 1.
func (s *RotationCursorStore) Next(ctx context.Context, departmentID uint) (uint64, error) {
	key := fmt.Sprintf("%s%d", rotationCursorKeyPrefix, departmentID)
	val, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance rotation cursor: %w", err)
	}
	return uint64(val), nil
}

// Reset clears the department cursor so rotation restarts from the first
// eligible officer. Used when a department roster changes materially.
func (s *RotationCursorStore) Reset(ctx context.Context, departmentID uint) error {
	key := fmt.Sprintf("%s%d", rotationCursorKeyPrefix, departmentID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset rotation cursor: %w", err)
	}
	return nil
}
