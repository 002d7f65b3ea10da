package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"permitflow/internal/shared/config"
)

const (
	idempotencyResponsePrefix = "idempotency:"
	idempotencyLockPrefix     = "lock:idempotency:"
)

// CachedResponse is the serialized form of a completed HTTP response,
// replayed verbatim when the same idempotency key is seen again.
type CachedResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// RedisIdempotencyStore backs request deduplication with two Redis keys per
// idempotency key: a short-lived lock marking a request in flight, and a
// response cache holding the outcome of the first completed request.
type RedisIdempotencyStore struct {
	client      *redis.Client
	lockTTL     time.Duration
	responseTTL time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, cfg *config.IdempotencyConfig) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client:      client,
		lockTTL:     time.Duration(cfg.LockTTLSeconds) * time.Second,
		responseTTL: time.Duration(cfg.ResponseTTLHours) * time.Hour,
	}
}

// AcquireLock attempts to mark the key as in flight. Returns false when
// another request already holds the lock. The TTL bounds how long a crashed
// handler can block retries.
func (s *RedisIdempotencyStore) AcquireLock(ctx context.Context, key string) (bool, error) {
	acquired, err := s.client.SetNX(ctx, idempotencyLockPrefix+key, "1", s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire idempotency lock: %w", err)
	}
	return acquired, nil
}

func (s *RedisIdempotencyStore) ReleaseLock(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyLockPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency lock: %w", err)
	}
	return nil
}

// GetResponse returns the cached response for the key, or nil when no
// completed request has been recorded yet.
func (s *RedisIdempotencyStore) GetResponse(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := s.client.Get(ctx, idempotencyResponsePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached response: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached response: %w", err)
	}

	return &cached, nil
}

func (s *RedisIdempotencyStore) SaveResponse(ctx context.Context, key string, resp *CachedResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode cached response: %w", err)
	}

	if err := s.client.Set(ctx, idempotencyResponsePrefix+key, data, s.responseTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}

	return nil
}
