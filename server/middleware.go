package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDHeader carries the caller's identity, set by the gateway in
// front of this service after it validates the session.
const UserIDHeader = "X-User-ID"

// RequireUser rejects requests without a valid user id header
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			respondError(w, Unauthorized("missing "+UserIDHeader+" header"))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, Unauthorized("invalid "+UserIDHeader+" header"))
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests without the admin bearer token
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" || token != h.adminToken {
			respondError(w, &APIError{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userIDFrom returns the authenticated user id set by RequireUser
func userIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
