// Package ports defines the interfaces the application layer depends
// on. Infrastructure packages provide the implementations; handlers
// only ever see these contracts.
package ports

import (
	"context"
	"time"

	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/domain/identity"
)

// CatalogStore is the durable source of truth for albums and songs.
// Reads issued after a completed write observe that write. NotFound
// outcomes surface as typed errors (errors.IsNotFound); connectivity
// failures surface as store errors and must never be swallowed.
type CatalogStore interface {
	ListAlbums(ctx context.Context) ([]catalog.Album, error)
	ListSongs(ctx context.Context) ([]catalog.Song, error)
	GetAlbum(ctx context.Context, id string) (*catalog.Album, error)
	ListSongsByAlbum(ctx context.Context, albumID string) ([]catalog.Song, error)
	GetSong(ctx context.Context, id string) (*catalog.Song, error)

	CreateAlbum(ctx context.Context, album *catalog.Album) error
	CreateSong(ctx context.Context, song *catalog.Song) error
	SetSongThumbnail(ctx context.Context, id, thumbnailURL string) (*catalog.Song, error)
	// DeleteAlbum removes the album and its songs in one transaction.
	DeleteAlbum(ctx context.Context, id string) error
	DeleteSong(ctx context.Context, id string) error
}

// UserStore persists registered accounts for the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user *identity.User) error
	GetUserByEmail(ctx context.Context, email string) (*identity.User, error)
	GetUserByID(ctx context.Context, id string) (*identity.User, error)
}

// Cache is the key-value cache the catalog and admin services share.
// Caching is an optimization, never a correctness dependency: every
// method's error is inspectable but safe to discard, and Available
// must reflect current liveness on each call rather than a memoized
// connection state.
type Cache interface {
	Available(ctx context.Context) bool
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// SetWithTTL stores a value best-effort. Failures do not abort the
	// caller's request.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes keys best-effort, same policy as SetWithTTL.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// MediaStore converts uploaded bytes into a durable absolute URL.
// Invoked by the mutation service before the store write; a failure
// aborts the whole mutation.
type MediaStore interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
}
