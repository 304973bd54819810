package session

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/redis/go-redis/v9"

	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

const redisKeyPrefix = "session:"

// RedisStore is the networked session store, selected when REDIS_URL is
// configured. Payloads are stored as JSON under a per-session key with a TTL;
// Redis commands are atomic per key, which is all the store contract needs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl disables expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, token *domain.TokenPayload) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+sessionID, data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*domain.TokenPayload, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.SessionNotFound(sessionID)
	}
	if err != nil {
		return nil, err
	}

	var token domain.TokenPayload
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}

var _ out.SessionStore = (*RedisStore)(nil)
