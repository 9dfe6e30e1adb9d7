package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// authKey is the context key for the bearer token resolution.
const authKey ctxKey = "auth"

// authResult is what the middleware learned from the Authorization header.
type authResult struct {
	user *domain.User
	err  error
}

// authMiddleware resolves Bearer tokens and stores the outcome in context.
// Requests without a token continue anonymously; handlers decide whether that is acceptable.
func authMiddleware(accounts *service.AccountService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || accounts == nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := accounts.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug("bearer token rejected", "path", r.URL.Path, "error", err)
			}
			ctx := context.WithValue(r.Context(), authKey, &authResult{user: user, err: err})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireUser returns the authenticated user from context.
// Returns 401 when no token was sent or the token was rejected.
func RequireUser(ctx context.Context) (*domain.User, error) {
	res, ok := ctx.Value(authKey).(*authResult)
	if !ok {
		return nil, domainerrors.Unauthorized("Authentification requise")
	}
	if res.err != nil {
		return nil, res.err
	}
	return res.user, nil
}

// OptionalUser returns the authenticated user, or nil for anonymous callers.
// A rejected token is treated as anonymous.
func OptionalUser(ctx context.Context) *domain.User {
	res, ok := ctx.Value(authKey).(*authResult)
	if !ok || res.err != nil {
		return nil
	}
	return res.user
}
