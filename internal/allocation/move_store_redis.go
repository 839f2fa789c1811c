package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stockroom/pkg/models"

	"github.com/redis/go-redis/v9"
)

// RedisMoveStore shares move state between replicas so a retry can land on
// any of them.
type RedisMoveStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisMoveStore(addr string, retention time.Duration) (*RedisMoveStore, error) {
	if retention <= 0 {
		retention = time.Hour
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &RedisMoveStore{client: client, retention: retention}, nil
}

func moveKey(key string) string {
	return "stockroom:move:" + key
}

func (s *RedisMoveStore) Get(ctx context.Context, key string) (*models.MoveState, error) {
	raw, err := s.client.Get(ctx, moveKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read move state: %w", err)
	}

	var state models.MoveState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode move state: %w", err)
	}
	return &state, nil
}

func (s *RedisMoveStore) Put(ctx context.Context, state models.MoveState) error {
	state.UpdatedAt = time.Now()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode move state: %w", err)
	}

	if err := s.client.Set(ctx, moveKey(state.Key), raw, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to write move state: %w", err)
	}
	return nil
}
