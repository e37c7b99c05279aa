package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const UsernameKey contextKey = "username"

// TokenValidator validates a bearer token and returns the username it
// belongs to.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// JWTAuth validates the Authorization bearer token and puts the username
// into the request context. Everything behind it can trust the identity.
func JWTAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			username, err := tokens.Validate(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsernameFromContext extracts the authenticated username from context
func GetUsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(UsernameKey).(string); ok {
		return username
	}
	return ""
}

// WithUsername returns a context carrying the authenticated username.
// Handler tests use it to stand in for JWTAuth.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}
