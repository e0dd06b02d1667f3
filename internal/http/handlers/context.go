package handlers

import (
	"context"
	"net/http"
)

type contextKey string

const userKey = contextKey("username")

// WithUser returns a context carrying the authenticated caller's username.
// The auth middleware attaches it to every request behind the bearer check.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// Username returns the authenticated caller's username, if any.
func Username(r *http.Request) string {
	if v, ok := r.Context().Value(userKey).(string); ok {
		return v
	}
	return ""
}
