package allocation

import (
	"context"
	"sync"
	"time"

	"stockroom/pkg/models"
)

// MoveStore keeps per-move state so a retried move can resume instead of
// re-applying a leg that already ran.
type MoveStore interface {
	Get(ctx context.Context, key string) (*models.MoveState, error)
	Put(ctx context.Context, state models.MoveState) error
}

// MemoryMoveStore is the in-process default. Entries expire after the
// retention window; a retry arriving later than that is treated as a fresh
// move.
type MemoryMoveStore struct {
	mu        sync.Mutex
	states    map[string]models.MoveState
	retention time.Duration
}

func NewMemoryMoveStore(retention time.Duration) *MemoryMoveStore {
	if retention <= 0 {
		retention = time.Hour
	}
	s := &MemoryMoveStore{
		states:    make(map[string]models.MoveState),
		retention: retention,
	}

	go s.cleanupLoop()

	return s
}

func (s *MemoryMoveStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.retention)
		for key, state := range s.states {
			if state.UpdatedAt.Before(cutoff) {
				delete(s.states, key)
			}
		}
		s.mu.Unlock()
	}
}

func (s *MemoryMoveStore) Get(_ context.Context, key string) (*models.MoveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *MemoryMoveStore) Put(_ context.Context, state models.MoveState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.UpdatedAt = time.Now()
	s.states[state.Key] = state
	return nil
}
