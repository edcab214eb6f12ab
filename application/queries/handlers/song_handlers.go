package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/cachekeys"
	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/application/queries"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// ListSongsHandler serves the full song listing cache-aside.
type ListSongsHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewListSongsHandler creates a new list songs handler.
func NewListSongsHandler(store ports.CatalogStore, cache ports.Cache, ttl time.Duration, logger *zap.Logger) *ListSongsHandler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListSongsHandler{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Handle executes the query.
func (h *ListSongsHandler) Handle(ctx context.Context, query queries.ListSongsQuery) (*queries.ListSongsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result, origin, err := readThrough(ctx, h.cache, h.logger, cachekeys.Songs(), h.ttl,
		func(ctx context.Context) (queries.ListSongsResult, error) {
			songs, err := h.store.ListSongs(ctx)
			if err != nil {
				return queries.ListSongsResult{}, err
			}
			return queries.ListSongsResult{Songs: songs}, nil
		})
	if err != nil {
		return nil, err
	}

	result.Origin = origin
	return &result, nil
}

// GetSongHandler serves a single song cache-aside. A not-found song is
// terminal and is never written to the cache.
type GetSongHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewGetSongHandler creates a new get song handler.
func NewGetSongHandler(store ports.CatalogStore, cache ports.Cache, ttl time.Duration, logger *zap.Logger) *GetSongHandler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GetSongHandler{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Handle executes the query.
func (h *GetSongHandler) Handle(ctx context.Context, query queries.GetSongQuery) (*queries.GetSongResult, error) {
	if err := query.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result, origin, err := readThrough(ctx, h.cache, h.logger, cachekeys.Song(query.SongID), h.ttl,
		func(ctx context.Context) (queries.GetSongResult, error) {
			song, err := h.store.GetSong(ctx, query.SongID)
			if err != nil {
				return queries.GetSongResult{}, err
			}
			return queries.GetSongResult{Song: *song}, nil
		})
	if err != nil {
		return nil, err
	}

	result.Origin = origin
	return &result, nil
}
