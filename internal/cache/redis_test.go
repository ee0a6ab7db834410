package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedis(client), mr
}

func TestRedis_SetGet(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "abc123", "https://example.com", time.Hour))

	got, err := c.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)

	// проверяем что ключ хранится с префиксом и TTL
	assert.True(t, mr.Exists("url:abc123"))
	assert.InDelta(t, time.Hour, mr.TTL("url:abc123"), float64(time.Minute))
}

func TestRedis_GetMiss(t *testing.T) {
	c, _ := newTestRedis(t)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedis_EntryExpires(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "abc123", "https://example.com", time.Second))

	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "abc123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedis_Invalidate(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "abc123", "https://example.com", time.Hour))
	require.NoError(t, c.Invalidate(ctx, "abc123"))

	_, err := c.Get(ctx, "abc123")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, c.Invalidate(ctx, "abc123"))
}

func TestRedis_BackendUnavailable(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	mr.Close()

	_, getErr := c.Get(ctx, "abc123")
	assert.ErrorIs(t, getErr, ErrUnavailable)

	setErr := c.Set(ctx, "abc123", "https://example.com", time.Hour)
	assert.ErrorIs(t, setErr, ErrUnavailable)
}
