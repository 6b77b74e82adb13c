// Package cache wraps the Redis client used for bot-side rate limiting.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("successfully connected to Redis")

	return &Redis{client: client, logger: logger}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// IncrWithTTL increments the counter at key, setting its TTL on first
// increment, and returns the new value.
func (r *Redis) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			r.logger.Warn("failed to set TTL", zap.String("key", key), zap.Error(err))
		}
	}
	return n, nil
}
