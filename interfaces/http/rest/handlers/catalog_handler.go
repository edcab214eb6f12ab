package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/queries"
	qhandlers "github.com/Emmrex1/MusicApp/application/queries/handlers"
	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/pkg/common"
)

// CatalogHandler serves the public read API of the query service.
type CatalogHandler struct {
	listAlbums *qhandlers.ListAlbumsHandler
	listSongs  *qhandlers.ListSongsHandler
	albumSongs *qhandlers.GetAlbumSongsHandler
	getSong    *qhandlers.GetSongHandler
	logger     *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(
	listAlbums *qhandlers.ListAlbumsHandler,
	listSongs *qhandlers.ListSongsHandler,
	albumSongs *qhandlers.GetAlbumSongsHandler,
	getSong *qhandlers.GetSongHandler,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		listAlbums: listAlbums,
		listSongs:  listSongs,
		albumSongs: albumSongs,
		getSong:    getSong,
		logger:     logger,
	}
}

// AlbumsResponse is the body of GET /albums.
type AlbumsResponse struct {
	common.Envelope
	Source string          `json:"source"`
	Albums []catalog.Album `json:"albums"`
}

// SongsResponse is the body of GET /songs.
type SongsResponse struct {
	common.Envelope
	Source string         `json:"source"`
	Songs  []catalog.Song `json:"songs"`
}

// AlbumSongsResponse is the body of GET /albums/{albumID}/songs.
type AlbumSongsResponse struct {
	common.Envelope
	Source string         `json:"source"`
	Album  catalog.Album  `json:"album"`
	Songs  []catalog.Song `json:"songs"`
}

// SongResponse is the body of GET /songs/{songID}.
type SongResponse struct {
	common.Envelope
	Source string       `json:"source"`
	Song   catalog.Song `json:"song"`
}

// ListAlbums handles GET /albums
func (h *CatalogHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	result, err := h.listAlbums.Handle(r.Context(), queries.ListAlbumsQuery{})
	if err != nil {
		h.logger.Error("Failed to list albums", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AlbumsResponse{
		Envelope: envelope("All albums", result.Origin),
		Source:   string(result.Origin),
		Albums:   result.Albums,
	})
}

// ListSongs handles GET /songs
func (h *CatalogHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	result, err := h.listSongs.Handle(r.Context(), queries.ListSongsQuery{})
	if err != nil {
		h.logger.Error("Failed to list songs", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, SongsResponse{
		Envelope: envelope("All songs", result.Origin),
		Source:   string(result.Origin),
		Songs:    result.Songs,
	})
}

// GetAlbumSongs handles GET /albums/{albumID}/songs
func (h *CatalogHandler) GetAlbumSongs(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "albumID")

	result, err := h.albumSongs.Handle(r.Context(), queries.GetAlbumSongsQuery{AlbumID: albumID})
	if err != nil {
		h.logger.Error("Failed to get album songs",
			zap.String("albumID", albumID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AlbumSongsResponse{
		Envelope: envelope("All songs of the album", result.Origin),
		Source:   string(result.Origin),
		Album:    result.Album,
		Songs:    result.Songs,
	})
}

// GetSong handles GET /songs/{songID}
func (h *CatalogHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "songID")

	result, err := h.getSong.Handle(r.Context(), queries.GetSongQuery{SongID: songID})
	if err != nil {
		h.logger.Error("Failed to get song",
			zap.String("songID", songID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, SongResponse{
		Envelope: envelope("Single song", result.Origin),
		Source:   string(result.Origin),
		Song:     result.Song,
	})
}

func envelope(message string, origin queries.Origin) common.Envelope {
	if origin == queries.OriginCache {
		message = fmt.Sprintf("%s (from cache)", message)
	}
	return common.Envelope{Success: true, Message: message}
}
