package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keyPrefix префикс ключей, чтобы не пересекаться с сессиями в том же redis.
const keyPrefix = "url:"

// Redis реализация Cache поверх redis.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, shortCode string) (string, error) {
	val, err := r.client.Get(ctx, keyPrefix+shortCode).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", errors.Wrap(ErrUnavailable, err.Error())
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, shortCode string, originalURL string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := r.client.Set(ctx, keyPrefix+shortCode, originalURL, ttl).Err(); err != nil {
		return errors.Wrap(ErrUnavailable, err.Error())
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, shortCode string) error {
	if err := r.client.Del(ctx, keyPrefix+shortCode).Err(); err != nil {
		return errors.Wrap(ErrUnavailable, err.Error())
	}
	return nil
}
