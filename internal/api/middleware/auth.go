package middleware

import (
	"errors"
	"net/http"

	"github.com/phrazzld/anime-api/internal/api/shared"
	"github.com/phrazzld/anime-api/internal/auth"
	"github.com/phrazzld/anime-api/internal/platform/logger"
	"github.com/phrazzld/anime-api/internal/redact"
)

// AuthMiddleware guards routes with an authorization gate.
type AuthMiddleware struct {
	gate auth.Gate
}

// NewAuthMiddleware creates a new AuthMiddleware with the given gate.
func NewAuthMiddleware(gate auth.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// Authenticate verifies the Authorization header and adds the principal to the
// request context. Unauthenticated callers get 401, callers without the write
// scope get 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.gate.Verify(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			respondAuthError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// RequireRole admits only principals the gate accepts for role. It must run
// after Authenticate.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := auth.PrincipalFromContext(r.Context())
			if err := m.gate.RequireRole(principal, role); err != nil {
				respondAuthError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Debug("authorization rejected", "error", redact.Error(err))

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
	case errors.Is(err, auth.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, auth.ErrInsufficientScope):
		w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient scope")
	case errors.Is(err, auth.ErrForbiddenRole):
		shared.RespondWithError(w, r, http.StatusForbidden, "Forbidden")
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal Server Error", err)
	}
}
