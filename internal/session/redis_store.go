package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adscalemedia/adsite-backend/internal/security"
)

// redisKeyPrefix namespaces session keys in Redis.
const redisKeyPrefix = "adsite:session:"

// RedisStore keeps sessions in Redis with native TTL expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Create generates a new session key for userID valid for ttl.
func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	id, errID := security.NewSessionID()
	if errID != nil {
		return "", errID
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, userID, ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get resolves a session id to its user id or returns ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (string, error) {
	userID, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

// Delete invalidates a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
