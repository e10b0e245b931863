// Package auth authenticates API requests with HS256 bearer tokens and makes
// the owner identity available to handlers. Every resource query is scoped by
// that owner, so a request without a valid token never reaches a handler.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey struct{}

var ownerKey contextKey

// OwnerID returns the authenticated owner stored by Middleware. The boolean is
// false on requests that did not pass through it.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey).(uuid.UUID)
	return id, ok
}

// WithOwnerID is intended for tests that exercise handlers without the
// middleware in front of them.
func WithOwnerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey, id)
}

// Middleware validates the Authorization bearer token and stores the owner ID
// from the subject claim in the request context. Anything short of a valid,
// unexpired HS256 token with a UUID subject gets a 401.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := authenticate(r, secret)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
		})
	}
}

func authenticate(r *http.Request, secret []byte) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return uuid.Nil, fmt.Errorf("missing bearer token")
	}

	raw := strings.TrimSpace(header[len(prefix):])

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject claim: %w", err)
	}

	ownerID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing subject claim: %w", err)
	}

	return ownerID, nil
}
