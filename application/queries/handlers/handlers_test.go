package handlers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/cachekeys"
	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/application/queries"
	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/infrastructure/cache"
	"github.com/Emmrex1/MusicApp/infrastructure/persistence/sqlite"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// countingStore wraps the real store so tests can assert that cache
// hits never reach it.
type countingStore struct {
	ports.CatalogStore
	listAlbums int
	listSongs  int
	getAlbum   int
	getSong    int
}

func (s *countingStore) ListAlbums(ctx context.Context) ([]catalog.Album, error) {
	s.listAlbums++
	return s.CatalogStore.ListAlbums(ctx)
}

func (s *countingStore) ListSongs(ctx context.Context) ([]catalog.Song, error) {
	s.listSongs++
	return s.CatalogStore.ListSongs(ctx)
}

func (s *countingStore) GetAlbum(ctx context.Context, id string) (*catalog.Album, error) {
	s.getAlbum++
	return s.CatalogStore.GetAlbum(ctx, id)
}

func (s *countingStore) GetSong(ctx context.Context, id string) (*catalog.Song, error) {
	s.getSong++
	return s.CatalogStore.GetSong(ctx, id)
}

func newFixture(t *testing.T) (*countingStore, *cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedis(client, time.Second, zap.NewNop())
	t.Cleanup(func() { c.Close() })

	store := &countingStore{CatalogStore: sqlite.NewCatalogStore(db, zap.NewNop())}
	return store, c, mr
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

func TestListAlbumsPopulatesThenHits(t *testing.T) {
	store, c, _ := newFixture(t)
	ctx := context.Background()

	album := mustAlbum(t, "album")
	require.NoError(t, store.CreateAlbum(ctx, album))

	h := NewListAlbumsHandler(store, c, time.Minute, zap.NewNop())

	first, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, first.Origin)
	require.Len(t, first.Albums, 1)
	assert.Equal(t, 1, store.listAlbums)

	// Second read is a hit and must not reach the store.
	second, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginCache, second.Origin)
	require.Len(t, second.Albums, 1)
	assert.Equal(t, album.ID, second.Albums[0].ID)
	assert.Equal(t, album.Title, second.Albums[0].Title)
	assert.Equal(t, 1, store.listAlbums)
}

func TestListAlbumsBoundedStaleness(t *testing.T) {
	store, c, mr := newFixture(t)
	ctx := context.Background()

	h := NewListAlbumsHandler(store, c, 30*time.Minute, zap.NewNop())

	first, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Empty(t, first.Albums)

	// A write that bypasses invalidation is visible once the TTL
	// lapses, never later.
	require.NoError(t, store.CreateAlbum(ctx, mustAlbum(t, "late")))

	stale, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginCache, stale.Origin)
	assert.Empty(t, stale.Albums)

	mr.FastForward(31 * time.Minute)

	fresh, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, fresh.Origin)
	assert.Len(t, fresh.Albums, 1)
}

func TestCacheDownFallsThroughToStore(t *testing.T) {
	store, c, mr := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAlbum(ctx, mustAlbum(t, "album")))
	mr.Close()

	h := NewListAlbumsHandler(store, c, time.Minute, zap.NewNop())

	result, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, result.Origin)
	assert.Len(t, result.Albums, 1)
}

func TestUndecodableEntryFallsThrough(t *testing.T) {
	store, c, mr := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAlbum(ctx, mustAlbum(t, "album")))
	require.NoError(t, mr.Set(cachekeys.Albums(), "not msgpack"))

	h := NewListAlbumsHandler(store, c, time.Minute, zap.NewNop())

	result, err := h.Handle(ctx, queries.ListAlbumsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, result.Origin)
	assert.Len(t, result.Albums, 1)
}

func TestGetAlbumSongsRoundTrip(t *testing.T) {
	store, c, _ := newFixture(t)
	ctx := context.Background()

	album := mustAlbum(t, "album")
	require.NoError(t, store.CreateAlbum(ctx, album))
	song := mustSong(t, "track", album.ID)
	require.NoError(t, store.CreateSong(ctx, song))

	h := NewGetAlbumSongsHandler(store, c, time.Minute, zap.NewNop())

	first, err := h.Handle(ctx, queries.GetAlbumSongsQuery{AlbumID: album.ID})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, first.Origin)
	assert.Equal(t, album.ID, first.Album.ID)
	require.Len(t, first.Songs, 1)

	second, err := h.Handle(ctx, queries.GetAlbumSongsQuery{AlbumID: album.ID})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginCache, second.Origin)
	assert.Equal(t, album.ID, second.Album.ID)
	require.Len(t, second.Songs, 1)
	assert.Equal(t, song.ID, second.Songs[0].ID)
	assert.Equal(t, 1, store.getAlbum)
}

func TestGetAlbumSongsNotFoundNeverCached(t *testing.T) {
	store, c, mr := newFixture(t)
	ctx := context.Background()

	h := NewGetAlbumSongsHandler(store, c, time.Minute, zap.NewNop())

	_, err := h.Handle(ctx, queries.GetAlbumSongsQuery{AlbumID: "missing"})
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, mr.Exists(cachekeys.AlbumSongs("missing")))

	// Every retry reaches the store again.
	_, err = h.Handle(ctx, queries.GetAlbumSongsQuery{AlbumID: "missing"})
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 2, store.getAlbum)
}

func TestGetAlbumSongsValidation(t *testing.T) {
	store, c, _ := newFixture(t)

	h := NewGetAlbumSongsHandler(store, c, time.Minute, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.GetAlbumSongsQuery{})
	assert.True(t, errors.IsValidation(err))
}

func TestListSongsRoundTrip(t *testing.T) {
	store, c, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSong(ctx, mustSong(t, "track", "")))

	h := NewListSongsHandler(store, c, time.Minute, zap.NewNop())

	first, err := h.Handle(ctx, queries.ListSongsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, first.Origin)
	require.Len(t, first.Songs, 1)

	second, err := h.Handle(ctx, queries.ListSongsQuery{})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginCache, second.Origin)
	assert.Equal(t, 1, store.listSongs)
}

func TestGetSongRoundTrip(t *testing.T) {
	store, c, mr := newFixture(t)
	ctx := context.Background()

	song := mustSong(t, "track", "")
	require.NoError(t, store.CreateSong(ctx, song))

	h := NewGetSongHandler(store, c, time.Minute, zap.NewNop())

	first, err := h.Handle(ctx, queries.GetSongQuery{SongID: song.ID})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginStore, first.Origin)
	assert.Equal(t, song.ID, first.Song.ID)
	assert.True(t, mr.Exists(cachekeys.Song(song.ID)))

	second, err := h.Handle(ctx, queries.GetSongQuery{SongID: song.ID})
	require.NoError(t, err)
	assert.Equal(t, queries.OriginCache, second.Origin)
	assert.Equal(t, 1, store.getSong)

	_, err = h.Handle(ctx, queries.GetSongQuery{SongID: "missing"})
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, mr.Exists(cachekeys.Song("missing")))
}
