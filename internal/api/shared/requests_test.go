package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{header: "application/json", want: true},
		{header: "application/json; charset=utf-8", want: true},
		{header: "Application/JSON", want: true},
		{header: "", want: false},
		{header: "text/plain", want: false},
		{header: "application/x-www-form-urlencoded", want: false},
		{header: "application/jsonp", want: false},
		{header: ";;", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJSONContentType(tt.header))
		})
	}
}

func TestDecodeJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "object", body: `{"title":"Akira","releaseYear":1988}`},
		{name: "empty object", body: `{}`},
		{name: "array", body: `[{"title":"Akira"}]`, wantErr: ErrInvalidBody},
		{name: "string", body: `"Akira"`, wantErr: ErrInvalidBody},
		{name: "malformed", body: `{"title":`, wantErr: ErrInvalidBody},
		{name: "empty", body: ``, wantErr: ErrInvalidBody},
		{name: "trailing data", body: `{"a":1} {"b":2}`, wantErr: ErrInvalidBody},
		{name: "too large", body: `{"notes":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantErr: ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/anime", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			obj, err := DecodeJSONObject(w, req)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, obj)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, obj)
		})
	}
}

func TestDecodeJSONObject_KeepsNumbersExact(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/anime", strings.NewReader(`{"releaseYear":1998,"rating":8.9}`))

	obj, err := DecodeJSONObject(httptest.NewRecorder(), req)

	require.NoError(t, err)
	assert.Equal(t, json.Number("1998"), obj["releaseYear"])
	assert.Equal(t, json.Number("8.9"), obj["rating"])
}
