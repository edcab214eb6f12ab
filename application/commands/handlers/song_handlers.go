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

// CreateSongHandler uploads the audio file, writes the song to the
// store, then invalidates the listings the new song appears in.
type CreateSongHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	media  ports.MediaStore
	logger *zap.Logger
}

// NewCreateSongHandler creates a new create song handler.
func NewCreateSongHandler(store ports.CatalogStore, cache ports.Cache, media ports.MediaStore, logger *zap.Logger) *CreateSongHandler {
	return &CreateSongHandler{store: store, cache: cache, media: media, logger: logger}
}

// Handle executes the command.
func (h *CreateSongHandler) Handle(ctx context.Context, cmd commands.CreateSongCommand) (*catalog.Song, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// A song may only reference an album that exists.
	if cmd.AlbumID != "" {
		if _, err := h.store.GetAlbum(ctx, cmd.AlbumID); err != nil {
			return nil, err
		}
	}

	audioURL, err := h.media.Put(ctx, cmd.Audio.Filename, cmd.Audio.ContentType, cmd.Audio.Data)
	if err != nil {
		return nil, errors.NewExternalError("media upload", err)
	}

	song, err := catalog.NewSong(cmd.Title, cmd.Description, audioURL, cmd.AlbumID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := h.store.CreateSong(ctx, song); err != nil {
		return nil, err
	}

	keys := []string{cachekeys.Songs()}
	if cmd.AlbumID != "" {
		keys = append(keys, cachekeys.AlbumSongs(cmd.AlbumID))
	}
	invalidate(ctx, h.cache, h.logger, keys...)

	h.logger.Info("song created",
		zap.String("songID", song.ID),
		zap.String("title", song.Title),
	)
	return song, nil
}

// SetSongThumbnailHandler uploads a thumbnail, attaches it to the
// song, then invalidates every key that serves that song.
type SetSongThumbnailHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	media  ports.MediaStore
	logger *zap.Logger
}

// NewSetSongThumbnailHandler creates a new set song thumbnail handler.
func NewSetSongThumbnailHandler(store ports.CatalogStore, cache ports.Cache, media ports.MediaStore, logger *zap.Logger) *SetSongThumbnailHandler {
	return &SetSongThumbnailHandler{store: store, cache: cache, media: media, logger: logger}
}

// Handle executes the command.
func (h *SetSongThumbnailHandler) Handle(ctx context.Context, cmd commands.SetSongThumbnailCommand) (*catalog.Song, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	thumbnailURL, err := h.media.Put(ctx, cmd.Thumbnail.Filename, cmd.Thumbnail.ContentType, cmd.Thumbnail.Data)
	if err != nil {
		return nil, errors.NewExternalError("media upload", err)
	}

	song, err := h.store.SetSongThumbnail(ctx, cmd.SongID, thumbnailURL)
	if err != nil {
		return nil, err
	}

	keys := []string{cachekeys.Songs(), cachekeys.Song(song.ID)}
	if song.AlbumID != nil {
		keys = append(keys, cachekeys.AlbumSongs(*song.AlbumID))
	}
	invalidate(ctx, h.cache, h.logger, keys...)

	h.logger.Info("song thumbnail set", zap.String("songID", song.ID))
	return song, nil
}

// DeleteSongHandler deletes a song, then invalidates every key that
// could still serve it.
type DeleteSongHandler struct {
	store  ports.CatalogStore
	cache  ports.Cache
	logger *zap.Logger
}

// NewDeleteSongHandler creates a new delete song handler.
func NewDeleteSongHandler(store ports.CatalogStore, cache ports.Cache, logger *zap.Logger) *DeleteSongHandler {
	return &DeleteSongHandler{store: store, cache: cache, logger: logger}
}

// Handle executes the command.
func (h *DeleteSongHandler) Handle(ctx context.Context, cmd commands.DeleteSongCommand) error {
	if err := cmd.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	// Look the song up first: its album association decides which
	// album listing key goes stale.
	song, err := h.store.GetSong(ctx, cmd.SongID)
	if err != nil {
		return err
	}

	if err := h.store.DeleteSong(ctx, cmd.SongID); err != nil {
		return err
	}

	keys := []string{cachekeys.Songs(), cachekeys.Song(cmd.SongID)}
	if song.AlbumID != nil {
		keys = append(keys, cachekeys.AlbumSongs(*song.AlbumID))
	}
	invalidate(ctx, h.cache, h.logger, keys...)

	h.logger.Info("song deleted", zap.String("songID", cmd.SongID))
	return nil
}
