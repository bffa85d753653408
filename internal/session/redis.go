package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"go-contact-backend/internal/domain"
)

// RedisStore keeps session state in Redis so the throttle survives
// restarts and is shared across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

var _ domain.SessionStore = (*RedisStore)(nil)
