package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/cachekeys"
	"github.com/Emmrex1/MusicApp/application/commands"
	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// CreateAlbumHandler uploads the album thumbnail, writes the album to
// the store, then invalidates the album listing.
type CreateAlbumHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	media  ports.MediaStore
	logger *zap.Logger
}

// NewCreateAlbumHandler creates a new create album handler.
func NewCreateAlbumHandler(store ports.CatalogStore, cache ports.Cache, media ports.MediaStore, logger *zap.Logger) *CreateAlbumHandler {
	return &CreateAlbumHandler{store: store, cache: cache, media: media, logger: logger}
}

// Handle executes the command.
func (h *CreateAlbumHandler) Handle(ctx context.Context, cmd commands.CreateAlbumCommand) (*catalog.Album, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Upload before the store write: a failed upload aborts the whole
	// mutation and leaves the store untouched.
	thumbnailURL, err := h.media.Put(ctx, cmd.Thumbnail.Filename, cmd.Thumbnail.ContentType, cmd.Thumbnail.Data)
	if err != nil {
		return nil, errors.NewExternalError("media upload", err)
	}

	album, err := catalog.NewAlbum(cmd.Title, cmd.Description, thumbnailURL)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := h.store.CreateAlbum(ctx, album); err != nil {
		return nil, err
	}

	invalidate(ctx, h.cache, h.logger, cachekeys.Albums())

	h.logger.Info("album created",
		zap.String("albumID", album.ID),
		zap.String("title", album.Title),
	)
	return album, nil
}

// DeleteAlbumHandler deletes an album and its songs in one store
// transaction, then invalidates every key that could name them.
type DeleteAlbumHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	logger *zap.Logger
}

// NewDeleteAlbumHandler creates a new delete album handler.
func NewDeleteAlbumHandler(store ports.CatalogStore, cache ports.Cache, logger *zap.Logger) *DeleteAlbumHandler {
	return &DeleteAlbumHandler{store: store, cache: cache, logger: logger}
}

// Handle executes the command.
func (h *DeleteAlbumHandler) Handle(ctx context.Context, cmd commands.DeleteAlbumCommand) error {
	if err := cmd.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	// The cascaded songs' single-song keys must go too, so collect
	// their ids before the rows disappear.
	songs, err := h.store.ListSongsByAlbum(ctx, cmd.AlbumID)
	if err != nil {
		return err
	}

	if err := h.store.DeleteAlbum(ctx, cmd.AlbumID); err != nil {
		return err
	}

	keys := []string{
		cachekeys.Albums(),
		cachekeys.Songs(),
		cachekeys.AlbumSongs(cmd.AlbumID),
	}
	for _, song := range songs {
		keys = append(keys, cachekeys.Song(song.ID))
	}
	invalidate(ctx, h.cache, h.logger, keys...)

	h.logger.Info("album deleted",
		zap.String("albumID", cmd.AlbumID),
		zap.Int("cascadedSongs", len(songs)),
	)
	return nil
}
