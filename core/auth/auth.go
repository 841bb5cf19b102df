// Package auth guards routes with bearer tokens and stored roles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/core/claims"
	"github.com/irsalhamdi/globe-lingual/core/token"
	"github.com/irsalhamdi/globe-lingual/core/user"
	"github.com/irsalhamdi/globe-lingual/database"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoToken = errors.New("authorization header missing or not a bearer token")

func bearer(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	scheme, tkn, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tkn) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(tkn), nil
}

// Authenticate verifies the bearer token and stores its claims on the context.
func Authenticate(secret string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			raw, err := bearer(r)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			clm, err := token.Parse(secret, raw)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Admin must run after Authenticate.
func Admin(db *mongo.Database) web.Middleware {
	return requireRole(db, user.RoleAdmin)
}

// Instructor must run after Authenticate.
func Instructor(db *mongo.Database) web.Middleware {
	return requireRole(db, user.RoleInstructor)
}

// requireRole reads the caller's stored role on every request, so a role
// change takes effect without reissuing tokens.
func requireRole(db *mongo.Database, role user.Role) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			clm, err := claims.Get(ctx)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			u, err := user.FetchByEmail(ctx, db, clm.Email)
			if errors.Is(err, database.ErrNotFound) {
				return weberr.Forbidden(fmt.Errorf("no user for %q", clm.Email))
			}
			if err != nil {
				return fmt.Errorf("fetching role of %q: %w", clm.Email, err)
			}

			if u.Role != role {
				return weberr.Forbidden(
					fmt.Errorf("user %q has role %q, want %q", clm.Email, u.Role, role),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
