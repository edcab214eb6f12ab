package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// ErrNoUserInContext is returned when a handler runs without the
// authentication middleware having populated the request context.
var ErrNoUserInContext = errors.New("no authenticated user in context")

// WithUser returns a context carrying the authenticated principal.
func WithUser(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// GetUserFromContext extracts the authenticated principal.
func GetUserFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoUserInContext
	}
	return claims, nil
}
