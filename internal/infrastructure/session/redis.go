// Package session provides the Redis-backed worksheet store, used when the
// server runs with more than one instance and worksheet state has to survive
// requests landing on different nodes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/domain/worksheet"
)

// Config configures the Redis connection and worksheet TTL.
type Config struct {
	Addr     string
	Password string
	DB       int

	// TTL is how long an idle worksheet survives before Redis expires it
	TTL time.Duration
}

// Store is a worksheet.Store over Redis. Worksheets are stored as JSON under
// "worksheet:<id>" with a sliding TTL: every Put refreshes it.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis worksheet store.
func NewStore(cfg Config) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     100,
			MinIdleConns: 10,
		}),
		ttl: ttl,
	}
}

var _ worksheet.Store = (*Store)(nil)

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

// Get implements worksheet.Store.
func (s *Store) Get(ctx context.Context, id string) (*worksheet.State, error) {
	data, err := s.client.Get(ctx, buildKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NewNotFound("worksheet", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get worksheet: %w", err)
	}

	var state worksheet.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal worksheet: %w", err)
	}
	return &state, nil
}

// Put implements worksheet.Store.
func (s *Store) Put(ctx context.Context, state *worksheet.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal worksheet: %w", err)
	}
	return s.client.Set(ctx, buildKey(state.ID), data, s.ttl).Err()
}

// Delete implements worksheet.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, buildKey(id)).Err()
}

func buildKey(id string) string {
	return fmt.Sprintf("worksheet:%s", id)
}
