package auth

import (
	"context"
	"net/http"
	"strings"

	"goalbet/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// Middleware authenticates user requests via a Bearer token and puts the
// user id into the request context.
func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware gates privileged routes on an opaque caller id carried in
// the X-Telegram-User-Id header, compared against the configured admin id.
// Non-admin callers get a plain 404, not a 403, so the admin surface stays
// undiscoverable.
func AdminMiddleware(adminID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := r.Header.Get("X-Telegram-User-Id")
			if adminID == "" || callerID != adminID {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
