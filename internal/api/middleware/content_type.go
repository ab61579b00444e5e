package middleware

import (
	"net/http"

	"github.com/phrazzld/anime-api/internal/api/shared"
)

// RequireJSON rejects requests whose Content-Type is not application/json with 415.
// It runs before the body is read.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shared.IsJSONContentType(r.Header.Get("Content-Type")) {
			shared.RespondWithError(w, r, http.StatusUnsupportedMediaType,
				"Content-Type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}
