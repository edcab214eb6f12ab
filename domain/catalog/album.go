package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Album is a catalog album row. The durable store owns albums; any
// copy held in the cache is a derived snapshot.
type Album struct {
	ID          string    `json:"id" msgpack:"id"`
	Title       string    `json:"title" msgpack:"title"`
	Description string    `json:"description" msgpack:"description"`
	Thumbnail   string    `json:"thumbnail" msgpack:"thumbnail"`
	CreatedAt   time.Time `json:"created_at" msgpack:"created_at"`
}

// NewAlbum creates an album with a fresh identifier and creation time.
func NewAlbum(title, description, thumbnailURL string) (*Album, error) {
	album := &Album{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Thumbnail:   thumbnailURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := album.Validate(); err != nil {
		return nil, err
	}
	return album, nil
}

// Validate checks the fields the store requires.
func (a *Album) Validate() error {
	if a.Title == "" {
		return ErrMissingTitle
	}
	if a.Description == "" {
		return ErrMissingDescription
	}
	return nil
}
