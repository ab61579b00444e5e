package shared

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// Request decoding errors.
var (
	// ErrInvalidBody is returned for bodies that are not a single JSON object.
	ErrInvalidBody = errors.New("request body must be a JSON object")

	// ErrBodyTooLarge is returned when the body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// IsJSONContentType reports whether the Content-Type header names application/json,
// with or without parameters such as charset.
func IsJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	return err == nil && mediaType == "application/json"
}

// DecodeJSONObject reads the request body as one JSON object. Numbers are kept
// as json.Number so validation can apply its own numeric rules.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, ErrInvalidBody
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrInvalidBody
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidBody
	}

	return obj, nil
}
