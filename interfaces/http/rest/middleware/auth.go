package middleware

import (
	"net/http"
	"strings"

	"github.com/Emmrex1/MusicApp/domain/identity"
	"github.com/Emmrex1/MusicApp/pkg/auth"
	"github.com/Emmrex1/MusicApp/pkg/common"
)

// Authenticate validates the bearer token and stores the principal in
// the request context. Runs before any store or cache access.
func Authenticate(jwt *auth.JWTManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.RespondError(w, http.StatusUnauthorized, "no token provided, please login")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				common.RespondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwt.Validate(parts[1])
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "invalid or expired token, please login")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), claims)))
		})
	}
}

// RequireAdmin terminates requests whose principal lacks the admin
// role. Must run after Authenticate.
func RequireAdmin() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Role != identity.RoleAdmin {
				common.RespondError(w, http.StatusForbidden, "you are not authorized as admin to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
