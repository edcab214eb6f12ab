package handlers

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/application/queries"
)

// DefaultTTL bounds staleness of every cache entry. An entry written
// at T is never served after T+TTL.
const DefaultTTL = 30 * time.Minute

// readThrough runs the cache-aside read path for one key.
//
// Availability is re-checked before the populate step: the cache may
// have dropped between the miss and the store read. Concurrent misses
// for the same key may both load and both populate; last write wins,
// which is safe because values are idempotent derivations of store
// state. Cache failures are logged and degrade to a store read, never
// surfacing to the caller. A load error (including not-found) is
// terminal and never populates the cache.
func readThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	logger *zap.Logger,
	key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (T, queries.Origin, error) {
	var zero T

	if cache.Available(ctx) {
		data, found, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("cache read failed, falling through to store",
				zap.String("key", key),
				zap.Error(err),
			)
		case found:
			var val T
			if err := msgpack.Unmarshal(data, &val); err != nil {
				logger.Warn("cache entry undecodable, falling through to store",
					zap.String("key", key),
					zap.Error(err),
				)
			} else {
				return val, queries.OriginCache, nil
			}
		}
	}

	val, err := load(ctx)
	if err != nil {
		return zero, "", err
	}

	if cache.Available(ctx) {
		if err := populate(ctx, cache, key, val, ttl); err != nil {
			// Deliberately discarded: the result is already in hand
			// and the entry self-heals on the next miss.
			logger.Warn("cache populate failed",
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			logger.Debug("cache populated", zap.String("key", key))
		}
	}

	return val, queries.OriginStore, nil
}

func populate[T any](ctx context.Context, cache ports.Cache, key string, val T, ttl time.Duration) error {
	data, err := msgpack.Marshal(val)
	if err != nil {
		return err
	}
	return cache.SetWithTTL(ctx, key, data, ttl)
}
