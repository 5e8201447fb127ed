package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ojtlog/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// authenticate verifies the bearer token and stores the user id in the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
			return
		}

		claims, err := s.issuer.Verify(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				writeError(w, r, http.StatusUnauthorized, "TOKEN_EXPIRED", "token has expired")
				return
			}
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerFrom returns the authenticated user id. Only valid behind authenticate.
func ownerFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
