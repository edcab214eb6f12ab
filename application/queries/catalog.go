package queries

import (
	"errors"

	"github.com/Emmrex1/MusicApp/domain/catalog"
)

// Origin tags where a query result came from, for observability and
// for the consistency tests: a hit path must never touch the store.
type Origin string

const (
	OriginCache Origin = "cache"
	OriginStore Origin = "store"
)

// ListAlbumsQuery requests the full album listing.
type ListAlbumsQuery struct{}

func (q ListAlbumsQuery) Validate() error { return nil }

// ListAlbumsResult is the full album listing and its origin.
type ListAlbumsResult struct {
	Albums []catalog.Album `json:"albums" msgpack:"albums"`
	Origin Origin          `json:"-" msgpack:"-"`
}

// ListSongsQuery requests the full song listing.
type ListSongsQuery struct{}

func (q ListSongsQuery) Validate() error { return nil }

// ListSongsResult is the full song listing and its origin.
type ListSongsResult struct {
	Songs  []catalog.Song `json:"songs" msgpack:"songs"`
	Origin Origin         `json:"-" msgpack:"-"`
}

// GetAlbumSongsQuery requests one album and its songs.
type GetAlbumSongsQuery struct {
	AlbumID string
}

func (q GetAlbumSongsQuery) Validate() error {
	if q.AlbumID == "" {
		return errors.New("album ID is required")
	}
	return nil
}

// GetAlbumSongsResult is an album with its song listing. The whole
// struct is the cached snapshot, so a hit replays both parts.
type GetAlbumSongsResult struct {
	Album  catalog.Album  `json:"album" msgpack:"album"`
	Songs  []catalog.Song `json:"songs" msgpack:"songs"`
	Origin Origin         `json:"-" msgpack:"-"`
}

// GetSongQuery requests a single song by id.
type GetSongQuery struct {
	SongID string
}

func (q GetSongQuery) Validate() error {
	if q.SongID == "" {
		return errors.New("song ID is required")
	}
	return nil
}

// GetSongResult is a single song and its origin.
type GetSongResult struct {
	Song   catalog.Song `json:"song" msgpack:"song"`
	Origin Origin       `json:"-" msgpack:"-"`
}
