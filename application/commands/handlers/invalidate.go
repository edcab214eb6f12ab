package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
)

// invalidate deletes the cache keys a committed mutation made stale.
//
// Runs after the store write and before the HTTP response. Failure
// never fails the mutation: the outcome is inspected, logged, and
// discarded, and the stale entry self-heals at TTL expiry.
func invalidate(ctx context.Context, cache ports.Cache, logger *zap.Logger, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if !cache.Available(ctx) {
		logger.Warn("cache unavailable, skipping invalidation; entries expire at TTL",
			zap.Strings("keys", keys),
		)
		return
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed; entries expire at TTL",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return
	}
	logger.Debug("cache invalidated", zap.Strings("keys", keys))
}
