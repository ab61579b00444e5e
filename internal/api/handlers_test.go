package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalHandlers(t *testing.T) {
	tests := []struct {
		name         string
		handler      http.HandlerFunc
		expectedCode int
		expectedBody string
	}{
		{"health", Health, http.StatusOK, `{"status":"ok"}`},
		{"not found", NotFound, http.StatusNotFound, `{"message":"Not Found"}`},
		{"method not allowed", MethodNotAllowed, http.StatusMethodNotAllowed, `{"message":"Method Not Allowed"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.handler(w, httptest.NewRequest(http.MethodGet, "/somewhere", nil))

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}
