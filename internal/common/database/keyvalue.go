// internal/common/database/keyvalue.go
package database

import (
	"context"
	"errors"
	"time"

	"boreal-workers/internal/engine/dedupe"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValueStore adapts a Redis client to the dedupe.KeyValueStore
// interface used by the idempotency key issuer. Keys are namespaced with a
// prefix and expire after the configured TTL.
type RedisKeyValueStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisKeyValueStore creates a key-value store backed by Redis.
func NewRedisKeyValueStore(client *redis.Client, prefix string, ttl time.Duration) *RedisKeyValueStore {
	return &RedisKeyValueStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a value by key
func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", dedupe.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value under key with the configured TTL
func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// Remove deletes a key
func (s *RedisKeyValueStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
