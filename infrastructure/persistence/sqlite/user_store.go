package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/domain/identity"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// UserStore persists accounts for the auth service.
type UserStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ ports.UserStore = (*UserStore)(nil)

// NewUserStore creates a user store on an opened database.
func NewUserStore(db *sql.DB, logger *zap.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

// CreateUser inserts an account; a duplicate email is a conflict.
func (s *UserStore) CreateUser(ctx context.Context, user *identity.User) error {
	playlists, err := json.Marshal(user.Playlists)
	if err != nil {
		return errors.NewStoreError("encode playlists", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, playlists, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, string(playlists), user.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.NewConflictError("user already exists")
		}
		return errors.NewStoreError("create user", err)
	}
	return nil
}

// GetUserByEmail returns the account for an email, or not-found.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password_hash, role, playlists, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByID returns the account for an id, or not-found.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*identity.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password_hash, role, playlists, created_at FROM users WHERE id = ?`, id)
}

func (s *UserStore) getUser(ctx context.Context, query string, arg interface{}) (*identity.User, error) {
	var user identity.User
	var playlists string
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &playlists, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("user")
	}
	if err != nil {
		return nil, errors.NewStoreError("get user", err)
	}
	if err := json.Unmarshal([]byte(playlists), &user.Playlists); err != nil {
		user.Playlists = []string{}
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}
