package redemption

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pending:v1:"

// RedisStore keeps pending codes in Redis. Uniqueness rides on SetNX; keys
// carry a retention longer than the code TTL so the coordinator can still
// tell an expired code apart from one that never existed, with Redis
// eventually garbage-collecting the rest.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore builds a Redis-backed pending-code store. retention should
// comfortably exceed the code TTL (2x is the wiring default).
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

// Put stores the pending code, failing with ErrCodeTaken on collision.
func (s *RedisStore) Put(ctx context.Context, pc PendingCode) error {
	payload, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("encode pending code: %w", err)
	}
	ok, err := s.client.SetNX(ctx, redisKeyPrefix+pc.Code, payload, s.retention).Result()
	if err != nil {
		return fmt.Errorf("store pending code: %w", err)
	}
	if !ok {
		return ErrCodeTaken
	}
	return nil
}

// Get loads a pending code by value.
func (s *RedisStore) Get(ctx context.Context, code string) (PendingCode, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+code).Result()
	if err == redis.Nil {
		return PendingCode{}, ErrCodeNotFound
	}
	if err != nil {
		return PendingCode{}, fmt.Errorf("load pending code: %w", err)
	}
	var pc PendingCode
	if err := json.Unmarshal([]byte(raw), &pc); err != nil {
		return PendingCode{}, fmt.Errorf("decode pending code: %w", err)
	}
	pc.Code = code
	return pc, nil
}

// Take atomically loads and removes a pending code via GETDEL, so only one
// of several concurrent redemptions can obtain it.
func (s *RedisStore) Take(ctx context.Context, code string) (PendingCode, error) {
	raw, err := s.client.GetDel(ctx, redisKeyPrefix+code).Result()
	if err == redis.Nil {
		return PendingCode{}, ErrCodeNotFound
	}
	if err != nil {
		return PendingCode{}, fmt.Errorf("take pending code: %w", err)
	}
	var pc PendingCode
	if err := json.Unmarshal([]byte(raw), &pc); err != nil {
		return PendingCode{}, fmt.Errorf("decode pending code: %w", err)
	}
	pc.Code = code
	return pc, nil
}

// Delete removes a pending code.
func (s *RedisStore) Delete(ctx context.Context, code string) error {
	return s.client.Del(ctx, redisKeyPrefix+code).Err()
}

// Sweep is a no-op: Redis expires keys on its own.
func (s *RedisStore) Sweep(_ context.Context) error {
	return nil
}
