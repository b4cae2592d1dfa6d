// ABOUTME: Redis-backed token slot shared across terminals
// ABOUTME: One key per profile under the hotelbook:token: prefix

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix prefixes every token key
const RedisKeyPrefix = "hotelbook:token:"

// RedisStore keeps the token in a Redis string key
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a slot for profile on client. An empty profile means "default".
func NewRedisStore(client redis.UniversalClient, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, key: RedisKeyPrefix + profile}
}

// OpenRedisStore parses a redis:// URL and returns a slot bound to a new client
func OpenRedisStore(url, profile string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), profile), nil
}

// Key returns the Redis key holding the token
func (s *RedisStore) Key() string {
	return s.key
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
