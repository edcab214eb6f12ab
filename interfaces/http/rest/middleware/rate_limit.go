package middleware

import (
	"net"
	"net/http"

	"github.com/Emmrex1/MusicApp/pkg/auth"
	"github.com/Emmrex1/MusicApp/pkg/common"
)

// RateLimitByIP rejects requests from IPs exceeding the limiter's
// window. Applied to the credential endpoints of the auth service.
func RateLimitByIP(limiter *auth.IPRateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := limiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// RealIP middleware has already folded X-Forwarded-For into
	// RemoteAddr when present.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
