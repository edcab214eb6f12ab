package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingDescription = errors.New("description is required")
	ErrMissingAudio       = errors.New("audio URL is required")
)

// Song is a catalog song row. AlbumID is nullable: removing an album
// outside the cascading delete path leaves its songs de-associated
// rather than deleted.
type Song struct {
	ID          string    `json:"id" msgpack:"id"`
	Title       string    `json:"title" msgpack:"title"`
	Description string    `json:"description" msgpack:"description"`
	Thumbnail   string    `json:"thumbnail,omitempty" msgpack:"thumbnail"`
	Audio       string    `json:"audio" msgpack:"audio"`
	AlbumID     *string   `json:"album_id,omitempty" msgpack:"album_id"`
	CreatedAt   time.Time `json:"created_at" msgpack:"created_at"`
}

// NewSong creates a song with a fresh identifier and creation time.
// albumID may be empty for a single not attached to any album.
func NewSong(title, description, audioURL, albumID string) (*Song, error) {
	song := &Song{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Audio:       audioURL,
		CreatedAt:   time.Now().UTC(),
	}
	if albumID != "" {
		song.AlbumID = &albumID
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}
	return song, nil
}

// Validate checks the fields the store requires.
func (s *Song) Validate() error {
	if s.Title == "" {
		return ErrMissingTitle
	}
	if s.Description == "" {
		return ErrMissingDescription
	}
	if s.Audio == "" {
		return ErrMissingAudio
	}
	return nil
}
