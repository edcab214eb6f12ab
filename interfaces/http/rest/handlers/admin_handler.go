package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/commands"
	chandlers "github.com/Emmrex1/MusicApp/application/commands/handlers"
	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/pkg/common"
)

// maxUploadBytes caps multipart bodies; audio files dominate.
const maxUploadBytes = 64 << 20

// AdminHandler serves the role-gated mutation API.
type AdminHandler struct {
	createAlbum      *chandlers.CreateAlbumHandler
	createSong       *chandlers.CreateSongHandler
	setSongThumbnail *chandlers.SetSongThumbnailHandler
	deleteAlbum      *chandlers.DeleteAlbumHandler
	deleteSong       *chandlers.DeleteSongHandler
	logger           *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	createAlbum *chandlers.CreateAlbumHandler,
	createSong *chandlers.CreateSongHandler,
	setSongThumbnail *chandlers.SetSongThumbnailHandler,
	deleteAlbum *chandlers.DeleteAlbumHandler,
	deleteSong *chandlers.DeleteSongHandler,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		createAlbum:      createAlbum,
		createSong:       createSong,
		setSongThumbnail: setSongThumbnail,
		deleteAlbum:      deleteAlbum,
		deleteSong:       deleteSong,
		logger:           logger,
	}
}

// AlbumCreatedResponse is the body of POST /albums.
type AlbumCreatedResponse struct {
	common.Envelope
	Album *catalog.Album `json:"album"`
}

// SongCreatedResponse is the body of POST /songs and the thumbnail
// update.
type SongCreatedResponse struct {
	common.Envelope
	Song *catalog.Song `json:"song"`
}

// CreateAlbum handles POST /albums
func (h *AdminHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	upload, err := readUpload(r, "file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "no file to upload")
		return
	}

	cmd := commands.CreateAlbumCommand{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Thumbnail:   upload,
	}

	album, err := h.createAlbum.Handle(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Failed to create album", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, AlbumCreatedResponse{
		Envelope: common.Envelope{Success: true, Message: "Album created successfully"},
		Album:    album,
	})
}

// CreateSong handles POST /songs
func (h *AdminHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	upload, err := readUpload(r, "file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "no file to upload")
		return
	}

	cmd := commands.CreateSongCommand{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		AlbumID:     r.FormValue("album_id"),
		Audio:       upload,
	}

	song, err := h.createSong.Handle(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Failed to create song", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, SongCreatedResponse{
		Envelope: common.Envelope{Success: true, Message: "Song created successfully"},
		Song:     song,
	})
}

// SetSongThumbnail handles PUT /songs/{songID}/thumbnail
func (h *AdminHandler) SetSongThumbnail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	upload, err := readUpload(r, "file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "no file to upload")
		return
	}

	cmd := commands.SetSongThumbnailCommand{
		SongID:    chi.URLParam(r, "songID"),
		Thumbnail: upload,
	}

	song, err := h.setSongThumbnail.Handle(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Failed to set song thumbnail",
			zap.String("songID", cmd.SongID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, SongCreatedResponse{
		Envelope: common.Envelope{Success: true, Message: "Song thumbnail updated successfully"},
		Song:     song,
	})
}

// DeleteAlbum handles DELETE /albums/{albumID}
func (h *AdminHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "albumID")

	if err := h.deleteAlbum.Handle(r.Context(), commands.DeleteAlbumCommand{AlbumID: albumID}); err != nil {
		h.logger.Error("Failed to delete album",
			zap.String("albumID", albumID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Envelope{
		Success: true,
		Message: "Album deleted successfully",
	})
}

// DeleteSong handles DELETE /songs/{songID}
func (h *AdminHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "songID")

	if err := h.deleteSong.Handle(r.Context(), commands.DeleteSongCommand{SongID: songID}); err != nil {
		h.logger.Error("Failed to delete song",
			zap.String("songID", songID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.Envelope{
		Success: true,
		Message: "Song deleted successfully",
	})
}

func readUpload(r *http.Request, field string) (commands.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return commands.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return commands.FileUpload{}, err
	}

	return commands.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
