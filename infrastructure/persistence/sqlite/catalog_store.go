package sqlite

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/domain/catalog"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// CatalogStore is the SQLite-backed source of truth for albums and
// songs. Every read issued after a completed write observes it.
type CatalogStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ ports.CatalogStore = (*CatalogStore)(nil)

// NewCatalogStore creates a catalog store on an opened database.
func NewCatalogStore(db *sql.DB, logger *zap.Logger) *CatalogStore {
	return &CatalogStore{db: db, logger: logger}
}

// ListAlbums returns every album, newest first.
func (s *CatalogStore) ListAlbums(ctx context.Context) ([]catalog.Album, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, thumbnail, created_at FROM albums ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.NewStoreError("list albums", err)
	}
	defer rows.Close()

	albums := []catalog.Album{}
	for rows.Next() {
		var a catalog.Album
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Thumbnail, &createdAt); err != nil {
			return nil, errors.NewStoreError("scan album", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("list albums", err)
	}
	return albums, nil
}

// ListSongs returns every song, newest first.
func (s *CatalogStore) ListSongs(ctx context.Context) ([]catalog.Song, error) {
	return s.querySongs(ctx,
		`SELECT id, title, description, thumbnail, audio, album_id, created_at FROM songs ORDER BY created_at DESC, id`)
}

// GetAlbum returns one album or a not-found error.
func (s *CatalogStore) GetAlbum(ctx context.Context, id string) (*catalog.Album, error) {
	var a catalog.Album
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, thumbnail, created_at FROM albums WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Thumbnail, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("album")
	}
	if err != nil {
		return nil, errors.NewStoreError("get album", err)
	}
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &a, nil
}

// ListSongsByAlbum returns the songs referencing an album id. An
// unknown album yields an empty list, not an error; existence checks
// belong to GetAlbum.
func (s *CatalogStore) ListSongsByAlbum(ctx context.Context, albumID string) ([]catalog.Song, error) {
	return s.querySongs(ctx,
		`SELECT id, title, description, thumbnail, audio, album_id, created_at FROM songs WHERE album_id = ? ORDER BY created_at DESC, id`,
		albumID)
}

// GetSong returns one song or a not-found error.
func (s *CatalogStore) GetSong(ctx context.Context, id string) (*catalog.Song, error) {
	songs, err := s.querySongs(ctx,
		`SELECT id, title, description, thumbnail, audio, album_id, created_at FROM songs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, errors.NewNotFoundError("song")
	}
	return &songs[0], nil
}

// CreateAlbum inserts an album.
func (s *CatalogStore) CreateAlbum(ctx context.Context, album *catalog.Album) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO albums (id, title, description, thumbnail, created_at) VALUES (?, ?, ?, ?, ?)`,
		album.ID, album.Title, album.Description, album.Thumbnail, album.CreatedAt.Unix())
	if err != nil {
		return errors.NewStoreError("create album", err)
	}
	return nil
}

// CreateSong inserts a song.
func (s *CatalogStore) CreateSong(ctx context.Context, song *catalog.Song) error {
	var albumID sql.NullString
	if song.AlbumID != nil {
		albumID = sql.NullString{String: *song.AlbumID, Valid: true}
	}
	var thumbnail sql.NullString
	if song.Thumbnail != "" {
		thumbnail = sql.NullString{String: song.Thumbnail, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO songs (id, title, description, thumbnail, audio, album_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		song.ID, song.Title, song.Description, thumbnail, song.Audio, albumID, song.CreatedAt.Unix())
	if err != nil {
		return errors.NewStoreError("create song", err)
	}
	return nil
}

// SetSongThumbnail updates a song's thumbnail and returns the updated
// row, or a not-found error if the id does not resolve.
func (s *CatalogStore) SetSongThumbnail(ctx context.Context, id, thumbnailURL string) (*catalog.Song, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET thumbnail = ? WHERE id = ?`, thumbnailURL, id)
	if err != nil {
		return nil, errors.NewStoreError("set song thumbnail", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.NewStoreError("set song thumbnail", err)
	}
	if affected == 0 {
		return nil, errors.NewNotFoundError("song")
	}
	return s.GetSong(ctx, id)
}

// DeleteAlbum removes an album and its songs in one transaction. The
// cascade is service-level and transactional: either the album and
// all its songs are gone, or nothing is.
func (s *CatalogStore) DeleteAlbum(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("delete album", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE album_id = ?`, id); err != nil {
		return errors.NewStoreError("delete album songs", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return errors.NewStoreError("delete album", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStoreError("delete album", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("album")
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("delete album", err)
	}
	return nil
}

// DeleteSong removes one song or returns a not-found error.
func (s *CatalogStore) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return errors.NewStoreError("delete song", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStoreError("delete song", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("song")
	}
	return nil
}

func (s *CatalogStore) querySongs(ctx context.Context, query string, args ...interface{}) ([]catalog.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("list songs", err)
	}
	defer rows.Close()

	songs := []catalog.Song{}
	for rows.Next() {
		var song catalog.Song
		var thumbnail, albumID sql.NullString
		var createdAt int64
		if err := rows.Scan(&song.ID, &song.Title, &song.Description, &thumbnail, &song.Audio, &albumID, &createdAt); err != nil {
			return nil, errors.NewStoreError("scan song", err)
		}
		if thumbnail.Valid {
			song.Thumbnail = thumbnail.String
		}
		if albumID.Valid {
			song.AlbumID = &albumID.String
		}
		song.CreatedAt = time.Unix(createdAt, 0).UTC()
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("list songs", err)
	}
	return songs, nil
}
