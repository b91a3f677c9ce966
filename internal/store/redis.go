package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces document keys.
const DefaultRedisPrefix = "prepiq:performance:"

// RedisDocumentRepo stores each user's document under a single Redis key.
type RedisDocumentRepo struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedisDocumentRepo wraps an existing client. An empty prefix uses
// DefaultRedisPrefix.
func NewRedisDocumentRepo(rdb goredis.UniversalClient, prefix string) *RedisDocumentRepo {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisDocumentRepo{rdb: rdb, prefix: prefix}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr string) (*goredis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Key returns the Redis key holding userID's document.
func (r *RedisDocumentRepo) Key(userID string) string {
	return r.prefix + userID
}

func (r *RedisDocumentRepo) Load(ctx context.Context, userID string) ([]byte, error) {
	if r == nil || r.rdb == nil {
		return nil, ErrNoBackend
	}
	data, err := r.rdb.Get(ctx, r.Key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (r *RedisDocumentRepo) Save(ctx context.Context, userID string, data []byte) error {
	if r == nil || r.rdb == nil {
		return ErrNoBackend
	}
	if err := r.rdb.Set(ctx, r.Key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisDocumentRepo) Delete(ctx context.Context, userID string) error {
	if r == nil || r.rdb == nil {
		return ErrNoBackend
	}
	if err := r.rdb.Del(ctx, r.Key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
