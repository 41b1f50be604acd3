package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type ctxKey int

const requesterIDKey ctxKey = iota

// Auth extracts the authenticated user id. Session mechanics live outside
// this service; the gateway forwards the session's user id in X-User-ID.
// Handlers still resolve the id against the user directory, so a stale or
// forged id fails there.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
			return
		}

		ctx := context.WithValue(r.Context(), requesterIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequesterID returns the session user id stored by Auth, or "".
func RequesterID(r *http.Request) string {
	id, _ := r.Context().Value(requesterIDKey).(string)
	return id
}
