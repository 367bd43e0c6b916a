package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"simplymail/internal/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// requireSession validates the Authorization bearer token and stores the
// session claims in the request context. A missing or bad token is an auth
// failure (401), never a data failure.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing bearer token"})
			return
		}
		claims, err := auth.ValidateToken(token, h.authSecret)
		if err != nil {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid or expired session"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, claims)))
	})
}

// sessionFrom returns the claims stored by requireSession, nil outside it.
func sessionFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(sessionKey).(*auth.Claims)
	return claims
}
