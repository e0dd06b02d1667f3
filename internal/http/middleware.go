package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/bloomnext/pos-inventory/internal/auth"
	"github.com/bloomnext/pos-inventory/internal/http/handlers"
	"github.com/bloomnext/pos-inventory/internal/http/rate_limiter"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// username in the request context.
func AuthMiddleware(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			username, _ := claims["username"].(string)
			ctx := handlers.WithUser(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitMiddleware applies the per-IP token bucket to every request.
func RateLimitMiddleware(registry *rate_limiter.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !registry.GetVisitor(ip).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
