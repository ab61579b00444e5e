package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/anime-api/internal/api/middleware"
	"github.com/phrazzld/anime-api/internal/auth"
	"github.com/phrazzld/anime-api/internal/config"
	"github.com/phrazzld/anime-api/internal/domain"
	"github.com/phrazzld/anime-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cowboyBebop = `{"title":"Cowboy Bebop","genres":["Action"],"releaseYear":1998,"status":"finished"}`

type testApp struct {
	app   *application
	gate  *mocks.MockGate
	anime *mocks.MockDocumentStore[domain.Anime]
	users *mocks.MockDocumentStore[domain.User]
	logs  *bytes.Buffer
}

func newTestApp(t *testing.T, gate auth.Gate) *testApp {
	t.Helper()

	var logs bytes.Buffer
	ta := &testApp{
		anime: mocks.NewMockDocumentStore[domain.Anime]("anime"),
		users: mocks.NewMockDocumentStore[domain.User]("users"),
		logs:  &logs,
	}
	if gate == nil {
		ta.gate = &mocks.MockGate{Enforced: true}
		gate = ta.gate
	}

	ta.app = &application{
		config: &config.Config{Server: config.ServerConfig{Port: 0, LogLevel: "debug", ShutdownTimeoutSeconds: 1}},
		logger: slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		gate:   gate,
		stores: stores{
			anime:      ta.anime,
			manga:      mocks.NewMockDocumentStore[domain.Manga]("manga"),
			users:      ta.users,
			watchlists: mocks.NewMockDocumentStore[domain.WatchItem]("watchlists"),
		},
		clock: func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	return ta
}

func (ta *testApp) serve(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	router, err := ta.app.setupRouter()
	require.NoError(t, err)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestRouterGlobalRoutes(t *testing.T) {
	ta := newTestApp(t, nil)

	tests := []struct {
		name         string
		method       string
		target       string
		expectedCode int
		expectedBody string
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK, `{"status":"ok"}`},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, `{"message":"Not Found"}`},
		{"unknown nested route", http.MethodGet, "/anime/ffffffffffffffffffffffff/episodes", http.StatusNotFound, `{"message":"Not Found"}`},
		{"wrong method", http.MethodPatch, "/anime", http.StatusMethodNotAllowed, `{"message":"Method Not Allowed"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ta.serve(t, tc.method, tc.target, "")
			assert.Equal(t, tc.expectedCode, w.Code)

			traceID := w.Header().Get(middleware.TraceIDHeader)
			require.NotEmpty(t, traceID)

			body := decodeBody(t, w)
			if tc.expectedCode >= http.StatusBadRequest {
				assert.Equal(t, traceID, body["trace_id"])
				delete(body, "trace_id")
			}
			expected := map[string]any{}
			require.NoError(t, json.Unmarshal([]byte(tc.expectedBody), &expected))
			assert.Equal(t, expected, body)
		})
	}
}

func TestRouterSwaggerDocument(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.serve(t, http.MethodGet, "/docs/swagger.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "2.0", body["swagger"])
	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	for _, p := range []string{"/anime", "/anime/{id}", "/manga", "/users/{id}", "/watchlists"} {
		assert.Contains(t, paths, p)
	}
}

func TestRouterAnimeScenario(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.serve(t, http.MethodPost, "/anime", cowboyBebop)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeBody(t, w)["id"].(string)
	assert.Regexp(t, `^[0-9a-f]{24}$`, id)
	assert.Equal(t, "/anime/"+id, w.Header().Get("Location"))

	w = ta.serve(t, http.MethodGet, "/anime/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cowboy Bebop", decodeBody(t, w)["title"])

	assert.Equal(t, http.StatusBadRequest, ta.serve(t, http.MethodGet, "/anime/not-an-id", "").Code)
	assert.Equal(t, http.StatusNotFound, ta.serve(t, http.MethodGet, "/anime/ffffffffffffffffffffffff", "").Code)

	assert.Equal(t, http.StatusNoContent, ta.serve(t, http.MethodDelete, "/anime/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, ta.serve(t, http.MethodDelete, "/anime/"+id, "").Code)

	assert.Contains(t, ta.logs.String(), "request completed")
	assert.Contains(t, ta.logs.String(), "document created")
}

func TestRouterWritesRequireGate(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.gate.Err = auth.ErrMissingToken

	assert.Equal(t, http.StatusOK, ta.serve(t, http.MethodGet, "/anime", "").Code)

	w := ta.serve(t, http.MethodPost, "/anime", cowboyBebop)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, 0, ta.anime.Len())

	ta.gate.Err = auth.ErrInsufficientScope
	assert.Equal(t, http.StatusForbidden, ta.serve(t, http.MethodDelete, "/manga/ffffffffffffffffffffffff", "").Code)
}

func TestRouterUserWritesRequireAdmin(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.gate.RequireRoleFn = func(p *auth.Principal, role string) error {
		assert.Equal(t, domain.RoleAdmin, role)
		return auth.ErrForbiddenRole
	}

	w := ta.serve(t, http.MethodPost, "/users", `{"email":"ed@bebop.example","displayName":"Ed"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, ta.users.Len())

	// role checks never apply to other resources or to reads
	assert.Equal(t, http.StatusCreated, ta.serve(t, http.MethodPost, "/anime", cowboyBebop).Code)
	assert.Equal(t, http.StatusOK, ta.serve(t, http.MethodGet, "/users", "").Code)

	ta.gate.RequireRoleFn = nil
	assert.Equal(t, http.StatusCreated,
		ta.serve(t, http.MethodPost, "/users", `{"email":"ed@bebop.example","displayName":"Ed"}`).Code)
}

func TestRouterPassThroughGate(t *testing.T) {
	ta := newTestApp(t, auth.NewPassThroughGate())

	w := ta.serve(t, http.MethodPost, "/users", `{"email":"faye@bebop.example","displayName":"Faye","role":"admin"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
