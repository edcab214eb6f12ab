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

// ListAlbumsHandler serves the full album listing cache-aside.
type ListAlbumsHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewListAlbumsHandler creates a new list albums handler.
func NewListAlbumsHandler(store ports.CatalogStore, cache ports.Cache, ttl time.Duration, logger *zap.Logger) *ListAlbumsHandler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListAlbumsHandler{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Handle executes the query.
func (h *ListAlbumsHandler) Handle(ctx context.Context, query queries.ListAlbumsQuery) (*queries.ListAlbumsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result, origin, err := readThrough(ctx, h.cache, h.logger, cachekeys.Albums(), h.ttl,
		func(ctx context.Context) (queries.ListAlbumsResult, error) {
			albums, err := h.store.ListAlbums(ctx)
			if err != nil {
				return queries.ListAlbumsResult{}, err
			}
			return queries.ListAlbumsResult{Albums: albums}, nil
		})
	if err != nil {
		return nil, err
	}

	result.Origin = origin
	return &result, nil
}

// GetAlbumSongsHandler serves one album and its songs cache-aside.
// A not-found album is terminal and is never written to the cache.
type GetAlbumSongsHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewGetAlbumSongsHandler creates a new album songs handler.
func NewGetAlbumSongsHandler(store ports.CatalogStore, cache ports.Cache, ttl time.Duration, logger *zap.Logger) *GetAlbumSongsHandler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GetAlbumSongsHandler{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Handle executes the query.
func (h *GetAlbumSongsHandler) Handle(ctx context.Context, query queries.GetAlbumSongsQuery) (*queries.GetAlbumSongsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result, origin, err := readThrough(ctx, h.cache, h.logger, cachekeys.AlbumSongs(query.AlbumID), h.ttl,
		func(ctx context.Context) (queries.GetAlbumSongsResult, error) {
			album, err := h.store.GetAlbum(ctx, query.AlbumID)
			if err != nil {
				return queries.GetAlbumSongsResult{}, err
			}
			songs, err := h.store.ListSongsByAlbum(ctx, query.AlbumID)
			if err != nil {
				return queries.GetAlbumSongsResult{}, err
			}
			return queries.GetAlbumSongsResult{Album: *album, Songs: songs}, nil
		})
	if err != nil {
		return nil, err
	}

	result.Origin = origin
	return &result, nil
}
