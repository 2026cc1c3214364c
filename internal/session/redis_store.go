package session

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// RedisStore keeps one hash per visitor. Hash names are derived from a
// BLAKE2b digest of the visitor id so the cookie value never appears in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "storefront:session:",
		ttl:    ttl,
	}
}

func (r *RedisStore) key(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return r.prefix + hex.EncodeToString(sum[:])
}

func (r *RedisStore) Get(ctx context.Context, id, field string) (string, bool, error) {
	if id == "" {
		return "", false, ErrEmptyID
	}

	key := r.key(id)
	val, err := r.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session: redis hget: %w", err)
	}

	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return "", false, fmt.Errorf("session: redis expire: %w", err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, id, field, value string) error {
	if id == "" {
		return ErrEmptyID
	}

	key := r.key(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, value)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: redis hset: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string, fields ...string) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(fields) == 0 {
		return nil
	}

	if err := r.client.HDel(ctx, r.key(id), fields...).Err(); err != nil {
		return fmt.Errorf("session: redis hdel: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
