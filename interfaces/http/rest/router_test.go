package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	chandlers "github.com/Emmrex1/MusicApp/application/commands/handlers"
	qhandlers "github.com/Emmrex1/MusicApp/application/queries/handlers"
	"github.com/Emmrex1/MusicApp/application/services"
	"github.com/Emmrex1/MusicApp/infrastructure/cache"
	"github.com/Emmrex1/MusicApp/infrastructure/config"
	"github.com/Emmrex1/MusicApp/infrastructure/di"
	"github.com/Emmrex1/MusicApp/infrastructure/media"
	"github.com/Emmrex1/MusicApp/infrastructure/persistence/sqlite"
	"github.com/Emmrex1/MusicApp/pkg/auth"
)

// newTestContainer wires the three services against a temp database,
// an in-process Redis, and a directory-backed media store.
func newTestContainer(t *testing.T) (*di.Container, *miniredis.Miniredis) {
	t.Helper()
	logger := zap.NewNop()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "musicapp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedis(client, time.Second, logger)
	t.Cleanup(func() { c.Close() })

	mediaStore, err := media.NewLocalStore(t.TempDir(), "http://localhost:8001", logger)
	require.NoError(t, err)

	jwtManager, err := auth.NewJWTManager(auth.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "musicapp",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)

	catalogStore := sqlite.NewCatalogStore(db, logger)
	userStore := sqlite.NewUserStore(db, logger)
	ttl := 30 * time.Minute

	return &di.Container{
		Config:       &config.Config{Environment: "development"},
		Logger:       logger,
		DB:           db,
		CatalogStore: catalogStore,
		UserStore:    userStore,
		Cache:        c,
		Media:        mediaStore,
		JWT:          jwtManager,
		UserService:  services.NewUserService(userStore, jwtManager, logger),

		ListAlbums: qhandlers.NewListAlbumsHandler(catalogStore, c, ttl, logger),
		ListSongs:  qhandlers.NewListSongsHandler(catalogStore, c, ttl, logger),
		AlbumSongs: qhandlers.NewGetAlbumSongsHandler(catalogStore, c, ttl, logger),
		GetSong:    qhandlers.NewGetSongHandler(catalogStore, c, ttl, logger),

		CreateAlbum:      chandlers.NewCreateAlbumHandler(catalogStore, c, mediaStore, logger),
		CreateSong:       chandlers.NewCreateSongHandler(catalogStore, c, mediaStore, logger),
		SetSongThumbnail: chandlers.NewSetSongThumbnailHandler(catalogStore, c, mediaStore, logger),
		DeleteAlbum:      chandlers.NewDeleteAlbumHandler(catalogStore, c, logger),
		DeleteSong:       chandlers.NewDeleteSongHandler(catalogStore, c, logger),
	}, mr
}

func adminToken(t *testing.T, c *di.Container) string {
	t.Helper()
	token, err := c.JWT.Issue("admin-1", "admin@example.com", "admin")
	require.NoError(t, err)
	return token
}

func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("file contents"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doJSON(t *testing.T, handler http.Handler, req *http.Request, out interface{}) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	res := rec.Result()
	t.Cleanup(func() { res.Body.Close() })
	if out != nil {
		data, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
	}
	return res
}

type albumsBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Albums  []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"albums"`
}

func listAlbums(t *testing.T, catalog http.Handler) albumsBody {
	t.Helper()
	var body albumsBody
	res := doJSON(t, catalog, httptest.NewRequest(http.MethodGet, "/api/v1/albums", nil), &body)
	require.Equal(t, http.StatusOK, res.StatusCode)
	return body
}

func TestCatalogReadInvalidateLoop(t *testing.T) {
	container, _ := newTestContainer(t)
	catalog := NewCatalogRouter(container).Setup()
	admin := NewAdminRouter(container).Setup()
	token := adminToken(t, container)

	// Empty catalog, served and cached from the store.
	first := listAlbums(t, catalog)
	assert.Equal(t, "store", first.Source)
	assert.Empty(t, first.Albums)

	// Create an album through the admin service.
	body, contentType := multipartBody(t, map[string]string{
		"title":       "First Album",
		"description": "debut",
	}, "cover.png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	var created struct {
		Album struct {
			ID        string `json:"id"`
			Thumbnail string `json:"thumbnail"`
		} `json:"album"`
	}
	res := doJSON(t, admin, req, &created)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.NotEmpty(t, created.Album.Thumbnail)

	// The write invalidated the listing: next read comes from the
	// store and sees the album, the one after replays from the cache.
	second := listAlbums(t, catalog)
	assert.Equal(t, "store", second.Source)
	require.Len(t, second.Albums, 1)
	assert.Equal(t, "First Album", second.Albums[0].Title)

	third := listAlbums(t, catalog)
	assert.Equal(t, "cache", third.Source)
	require.Len(t, third.Albums, 1)
	assert.Contains(t, third.Message, "from cache")

	// Delete and observe the empty listing immediately.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/albums/"+created.Album.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res = doJSON(t, admin, req, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	fourth := listAlbums(t, catalog)
	assert.Equal(t, "store", fourth.Source)
	assert.Empty(t, fourth.Albums)
}

func TestAlbumSongsAcrossServices(t *testing.T) {
	container, _ := newTestContainer(t)
	catalog := NewCatalogRouter(container).Setup()
	admin := NewAdminRouter(container).Setup()
	token := adminToken(t, container)

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Album",
		"description": "with songs",
	}, "cover.png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	var createdAlbum struct {
		Album struct {
			ID string `json:"id"`
		} `json:"album"`
	}
	res := doJSON(t, admin, req, &createdAlbum)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body, contentType = multipartBody(t, map[string]string{
		"title":       "Track",
		"description": "opener",
		"album_id":    createdAlbum.Album.ID,
	}, "track.mp3")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/songs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	var createdSong struct {
		Song struct {
			ID string `json:"id"`
		} `json:"song"`
	}
	res = doJSON(t, admin, req, &createdSong)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var albumSongs struct {
		Source string `json:"source"`
		Album  struct {
			ID string `json:"id"`
		} `json:"album"`
		Songs []struct {
			ID string `json:"id"`
		} `json:"songs"`
	}
	res = doJSON(t, catalog,
		httptest.NewRequest(http.MethodGet, "/api/v1/albums/"+createdAlbum.Album.ID+"/songs", nil), &albumSongs)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "store", albumSongs.Source)
	require.Len(t, albumSongs.Songs, 1)
	assert.Equal(t, createdSong.Song.ID, albumSongs.Songs[0].ID)

	// Unknown album id is a 404, both before and after caching.
	res = doJSON(t, catalog,
		httptest.NewRequest(http.MethodGet, "/api/v1/albums/does-not-exist/songs", nil), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	container, _ := newTestContainer(t)
	admin := NewAdminRouter(container).Setup()

	// No token at all.
	res := doJSON(t, admin, httptest.NewRequest(http.MethodPost, "/api/v1/albums", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Authenticated but not an admin.
	userToken, err := container.JWT.Issue("user-1", "user@example.com", "user")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/albums", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	res = doJSON(t, admin, req, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAuthServiceFlow(t *testing.T) {
	container, _ := newTestContainer(t)
	authRouter := NewAuthRouter(container).Setup()

	register := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return doJSON(t, authRouter, req, nil)
	}

	res := register(`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Duplicate registration conflicts.
	res = register(`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"email":"ada@example.com","password":"correct horse"}`))
	req.Header.Set("Content-Type", "application/json")
	res = doJSON(t, authRouter, req, &login)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, login.Token)

	var profile struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res = doJSON(t, authRouter, req, &profile)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ada@example.com", profile.User.Email)

	// Profile without a token is rejected.
	res = doJSON(t, authRouter, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHealthAndReadiness(t *testing.T) {
	container, _ := newTestContainer(t)
	catalog := NewCatalogRouter(container).Setup()

	res := doJSON(t, catalog, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = doJSON(t, catalog, httptest.NewRequest(http.MethodGet, "/ready", nil), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCatalogServesWithCacheDown(t *testing.T) {
	container, mr := newTestContainer(t)
	catalog := NewCatalogRouter(container).Setup()
	mr.Close()

	first := listAlbums(t, catalog)
	assert.Equal(t, "store", first.Source)
}
