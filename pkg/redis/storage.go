package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mydatashare/mdscore/pkg/storage"
)

// Storage implements storage.Storage on top of a go-redis client.
// Every key is written with the same expiration.
type Storage struct {
	db  redis.UniversalClient
	ttl time.Duration
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage wraps a Redis client. A zero ttl stores keys without expiration.
func NewStorage(client redis.UniversalClient, ttl time.Duration) *Storage {
	return &Storage{db: client, ttl: ttl}
}

// Get maps redis.Nil to storage.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: get %q: %w", key, err)
	}
	return val, nil
}

// Set stores value under key, expiring it after the storage TTL when one is set.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := s.db.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis: remove %q: %w", key, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}
