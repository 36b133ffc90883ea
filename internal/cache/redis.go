// Package cache provides the redis-backed store behind the read-through
// decorators at the service boundary.
package cache

import (
	"context"
	"errors"
	"time"

	internal "github.com/frahmantamala/payment-service/internal"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
}

func NewClient(cfg internal.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns (nil, nil) on a miss so callers can distinguish "not cached"
// from a transport failure.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Ping reports whether redis is reachable, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
