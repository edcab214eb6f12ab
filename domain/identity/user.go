package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the services. Mutations require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidRole = errors.New("role must be user or admin")

// User is a registered account. PasswordHash is a bcrypt hash and is
// never serialized into responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Playlists    []string  `json:"playlists"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a user with the default role.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Playlists:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
}

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// IsAdmin reports whether the user may call the mutation service.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
