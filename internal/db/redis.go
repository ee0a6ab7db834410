package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// NewRedisClient создает клиент redis по адресу вида redis://host:port/db
// и проверяет доступность сервера.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, optsErr := redis.ParseURL(redisURL)
	if optsErr != nil {
		return nil, errors.Wrapf(optsErr, "failed to parse redis url `%s`", redisURL)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		return nil, errors.Wrap(pingErr, "failed to ping redis")
	}
	return client, nil
}
