package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries as plain redis strings under a common prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a client; prefix namespaces every key (e.g. "glasspro:").
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

// Set writes without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
