// Package cache implements the shared key-value cache adapter on
// Redis. Caching is strictly an optimization: every operation runs
// under a bounded timeout so a degraded cache costs one short
// round-trip and nothing else, and no method outcome is a correctness
// dependency for callers.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
)

// DefaultOpTimeout bounds every cache round-trip. It is deliberately
// far below the HTTP request timeout so a hung cache degrades to a
// store read instead of a slow response.
const DefaultOpTimeout = 500 * time.Millisecond

// RedisCache adapts a redis.Client to the ports.Cache contract.
// The adapter owns the client and closes it on Close.
type RedisCache struct {
	client    *redis.Client
	opTimeout time.Duration
	logger    *zap.Logger
}

var _ ports.Cache = (*RedisCache)(nil)

// NewRedis creates a cache adapter over an explicit client. The
// adapter is constructed once at startup and passed to the services
// that need it; there is no package-level client.
func NewRedis(client *redis.Client, opTimeout time.Duration, logger *zap.Logger) *RedisCache {
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &RedisCache{client: client, opTimeout: opTimeout, logger: logger}
}

func (c *RedisCache) opCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.opTimeout)
}

// Available reports current liveness with a fresh ping. It is
// re-checked per operation by callers, never memoized here.
func (c *RedisCache) Available(ctx context.Context) bool {
	octx, cancel := c.opCtx(ctx)
	defer cancel()
	if err := c.client.Ping(octx).Err(); err != nil {
		c.logger.Debug("cache unavailable", zap.Error(err))
		return false
	}
	return true
}

// Get returns the bytes stored under key and whether it was present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	octx, cancel := c.opCtx(ctx)
	defer cancel()
	data, err := c.client.Get(octx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SetWithTTL stores a value with an expiry. Best effort: the caller
// inspects and discards the error, it never aborts a request.
func (c *RedisCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	octx, cancel := c.opCtx(ctx)
	defer cancel()
	return c.client.Set(octx, key, value, ttl).Err()
}

// Delete removes keys, best effort like SetWithTTL.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	octx, cancel := c.opCtx(ctx)
	defer cancel()
	return c.client.Del(octx, keys...).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
