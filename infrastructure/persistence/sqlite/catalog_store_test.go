package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

func newTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCatalogStore(db, zap.NewNop())
}

func mustAlbum(t *testing.T, title string) *catalog.Album {
	t.Helper()
	album, err := catalog.NewAlbum(title, title+" description", "https://cdn.test/"+title+".png")
	require.NoError(t, err)
	return album
}

func mustSong(t *testing.T, title, albumID string) *catalog.Song {
	t.Helper()
	song, err := catalog.NewSong(title, title+" description", "https://cdn.test/"+title+".mp3", albumID)
	require.NoError(t, err)
	return song
}

func TestCatalogStoreAlbumRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	album := mustAlbum(t, "first")
	require.NoError(t, store.CreateAlbum(ctx, album))

	got, err := store.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, album.ID, got.ID)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, album.Thumbnail, got.Thumbnail)

	albums, err := store.ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, album.ID, albums[0].ID)
}

func TestCatalogStoreAlbumNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetAlbum(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalogStoreSongRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	album := mustAlbum(t, "album")
	require.NoError(t, store.CreateAlbum(ctx, album))

	song := mustSong(t, "track-one", album.ID)
	require.NoError(t, store.CreateSong(ctx, song))

	got, err := store.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Equal(t, song.ID, got.ID)
	require.NotNil(t, got.AlbumID)
	assert.Equal(t, album.ID, *got.AlbumID)
	assert.Empty(t, got.Thumbnail)

	songs, err := store.ListSongs(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 1)
}

func TestCatalogStoreStandaloneSong(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	song := mustSong(t, "single", "")
	require.NoError(t, store.CreateSong(ctx, song))

	got, err := store.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
}

func TestCatalogStoreListSongsByAlbum(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	album := mustAlbum(t, "album")
	require.NoError(t, store.CreateAlbum(ctx, album))
	other := mustAlbum(t, "other")
	require.NoError(t, store.CreateAlbum(ctx, other))

	inAlbum := mustSong(t, "in", album.ID)
	require.NoError(t, store.CreateSong(ctx, inAlbum))
	elsewhere := mustSong(t, "out", other.ID)
	require.NoError(t, store.CreateSong(ctx, elsewhere))

	songs, err := store.ListSongsByAlbum(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, inAlbum.ID, songs[0].ID)

	// Unknown album is an empty list, not an error.
	songs, err = store.ListSongsByAlbum(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestCatalogStoreSetSongThumbnail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	song := mustSong(t, "track", "")
	require.NoError(t, store.CreateSong(ctx, song))

	updated, err := store.SetSongThumbnail(ctx, song.ID, "https://cdn.test/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/cover.png", updated.Thumbnail)

	_, err = store.SetSongThumbnail(ctx, "missing", "https://cdn.test/cover.png")
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalogStoreDeleteAlbumCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	album := mustAlbum(t, "album")
	require.NoError(t, store.CreateAlbum(ctx, album))
	first := mustSong(t, "first", album.ID)
	require.NoError(t, store.CreateSong(ctx, first))
	second := mustSong(t, "second", album.ID)
	require.NoError(t, store.CreateSong(ctx, second))
	standalone := mustSong(t, "keep", "")
	require.NoError(t, store.CreateSong(ctx, standalone))

	require.NoError(t, store.DeleteAlbum(ctx, album.ID))

	_, err := store.GetAlbum(ctx, album.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = store.GetSong(ctx, first.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = store.GetSong(ctx, second.ID)
	assert.True(t, errors.IsNotFound(err))

	// Songs outside the album survive the cascade.
	_, err = store.GetSong(ctx, standalone.ID)
	assert.NoError(t, err)
}

func TestCatalogStoreDeleteAlbumNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteAlbum(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestCatalogStoreDeleteSong(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	song := mustSong(t, "track", "")
	require.NoError(t, store.CreateSong(ctx, song))

	require.NoError(t, store.DeleteSong(ctx, song.ID))
	_, err := store.GetSong(ctx, song.ID)
	assert.True(t, errors.IsNotFound(err))

	err = store.DeleteSong(ctx, song.ID)
	assert.True(t, errors.IsNotFound(err))
}
