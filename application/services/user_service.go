package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Emmrex1/MusicApp/application/ports"
	"github.com/Emmrex1/MusicApp/domain/identity"
	"github.com/Emmrex1/MusicApp/pkg/auth"
	"github.com/Emmrex1/MusicApp/pkg/errors"
)

// UserService registers and authenticates accounts and issues the
// tokens the admin service validates.
type UserService struct {
	users  ports.UserStore
	tokens *auth.JWTManager
	logger *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(users ports.UserStore, tokens *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and returns it with a signed token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*identity.User, string, error) {
	if existing, err := s.users.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", errors.NewConflictError("user already exists")
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to hash password").WithCause(err)
	}

	user := identity.NewUser(name, email, string(hash))
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("user registered", zap.String("userID", user.ID))
	return user, token, nil
}

// Login verifies credentials and returns the account with a token.
func (s *UserService) Login(ctx context.Context, email, password string) (*identity.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, "", errors.NewValidationError("user does not exist, try again or register")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.NewValidationError("invalid password")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("user logged in", zap.String("userID", user.ID))
	return user, token, nil
}

// Profile returns the account for an authenticated principal.
func (s *UserService) Profile(ctx context.Context, userID string) (*identity.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
