package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesPragmasToEveryConnection(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "pragmas.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	// Hold the connections open so each loop iteration gets a fresh
	// one from the pool instead of reusing the first.
	conns := make([]*sql.Conn, 0, 5)
	t.Cleanup(func() {
		for _, conn := range conns {
			conn.Close()
		}
	})

	for i := 0; i < 5; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)

		var foreignKeys, busyTimeout int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout))
		assert.Equal(t, 1, foreignKeys, "connection %d", i)
		assert.Equal(t, 5000, busyTimeout, "connection %d", i)
	}
}

func TestDirectAlbumDeleteDeassociatesSongs(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "backstop.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	_, err = db.ExecContext(ctx,
		`INSERT INTO albums (id, title, description, thumbnail, created_at) VALUES ('a1', 'Album', 'd', '', 0)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO songs (id, title, description, audio, album_id, created_at) VALUES ('s1', 'Track', 'd', 'u', 'a1', 0)`)
	require.NoError(t, err)

	// A row removed with plain SQL, outside the service's cascading
	// delete, must leave the song de-associated rather than stranded
	// against a missing album.
	_, err = db.ExecContext(ctx, `DELETE FROM albums WHERE id = 'a1'`)
	require.NoError(t, err)

	var albumID sql.NullString
	require.NoError(t, db.QueryRowContext(ctx, `SELECT album_id FROM songs WHERE id = 's1'`).Scan(&albumID))
	assert.False(t, albumID.Valid)
}
