package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/padelyzer/bracket-engine/internal/httputil"
)

type ContextKey string

const ClubIDKey ContextKey = "clubID"

// ClubHeader is set by the upstream auth gateway once the caller is authenticated.
const ClubHeader = "X-Club-ID"

// RequireClub scopes the request to the club named in ClubHeader.
func RequireClub(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ClubHeader)
		if raw == "" {
			httputil.Unauthorized(w, "missing "+ClubHeader+" header")
			return
		}

		clubID, err := uuid.Parse(raw)
		if err != nil {
			httputil.Unauthorized(w, "invalid "+ClubHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), ClubIDKey, clubID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClubIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(ClubIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}
