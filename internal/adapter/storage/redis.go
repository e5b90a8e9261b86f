package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/niksmo/bloomora/pkg/retry"
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// A RedisKV keeps entries as plain redis strings without expiration.
type RedisKV struct {
	cl redisClient
}

func NewRedisKV(ctx context.Context, url string) (RedisKV, error) {
	const op = "NewRedisKV"
	log := slog.With("op", op)

	opts, err := redis.ParseURL(url)
	if err != nil {
		return RedisKV{}, fmt.Errorf("%s: %w", op, err)
	}

	kv := NewRedisKVFromClient(redis.NewClient(opts))

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		return kv.cl.Ping(ctx).Err()
	})
	if err != nil {
		_ = kv.cl.Close()
		return RedisKV{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}

	log.Info("redis is available")
	return kv, nil
}

func NewRedisKVFromClient(cl *redis.Client) RedisKV {
	return RedisKV{cl}
}

func (r RedisKV) Get(ctx context.Context, key string) (string, error) {
	const op = "RedisKV.Get"

	v, err := r.cl.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r RedisKV) Set(ctx context.Context, key, value string) error {
	const op = "RedisKV.Set"

	if err := r.cl.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r RedisKV) Delete(ctx context.Context, key string) error {
	const op = "RedisKV.Delete"

	if err := r.cl.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r RedisKV) Close() {
	const op = "RedisKV.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := r.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
