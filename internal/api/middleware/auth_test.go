package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/anime-api/internal/auth"
	"github.com/phrazzld/anime-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name            string
		gateErr         error
		expectedCode    int
		expectedMessage string
		expectedWWWAuth string
	}{
		{
			name:         "admitted",
			expectedCode: http.StatusOK,
		},
		{
			name:            "missing token",
			gateErr:         auth.ErrMissingToken,
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Authorization header required",
			expectedWWWAuth: "Bearer",
		},
		{
			name:            "invalid token",
			gateErr:         fmt.Errorf("%w: signature mismatch", auth.ErrInvalidToken),
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: "Invalid token",
			expectedWWWAuth: `Bearer error="invalid_token"`,
		},
		{
			name:            "insufficient scope",
			gateErr:         auth.ErrInsufficientScope,
			expectedCode:    http.StatusForbidden,
			expectedMessage: "Insufficient scope",
			expectedWWWAuth: `Bearer error="insufficient_scope"`,
		},
		{
			name:            "unexpected failure",
			gateErr:         errors.New("jwks fetch failed"),
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal Server Error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate := &mocks.MockGate{
				Err:       tc.gateErr,
				Principal: &auth.Principal{Subject: "auth0|spike", Verified: true},
			}

			var seen *auth.Principal
			handler := NewAuthMiddleware(gate).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = auth.PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/anime", nil)
			req.Header.Set("Authorization", "Bearer some.jwt.value")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Equal(t, []string{"Bearer some.jwt.value"}, gate.Headers)
			assert.Equal(t, tc.expectedWWWAuth, w.Header().Get("WWW-Authenticate"))

			if tc.gateErr == nil {
				require.NotNil(t, seen)
				assert.Equal(t, "auth0|spike", seen.Subject)
				return
			}
			assert.Nil(t, seen)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tc.expectedMessage), w.Body.String())
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &auth.Principal{Subject: "admin", Roles: []string{"admin"}, Verified: true}

	gate := &mocks.MockGate{
		Principal: admin,
		RequireRoleFn: func(p *auth.Principal, role string) error {
			if p.HasRole(role) {
				return nil
			}
			return auth.ErrForbiddenRole
		},
	}
	m := NewAuthMiddleware(gate)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("role present", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Authenticate(m.RequireRole("admin")(ok)).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("role missing", func(t *testing.T) {
		gate.Principal = &auth.Principal{Subject: "user", Roles: []string{"user"}, Verified: true}
		w := httptest.NewRecorder()
		m.Authenticate(m.RequireRole("admin")(ok)).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Forbidden"}`, w.Body.String())
	})
}

func TestAuthenticatePassThrough(t *testing.T) {
	m := NewAuthMiddleware(auth.NewPassThroughGate())
	handler := m.Authenticate(m.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		assert.True(t, ok)
		assert.False(t, p.Verified)
		w.WriteHeader(http.StatusCreated)
	})))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", nil).WithContext(context.Background())
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
