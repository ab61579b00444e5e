package apidoc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-openapi/spec"
)

// Handler serves doc as JSON. The document is encoded once.
func Handler(doc *spec.Swagger) (http.Handler, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode API document: %w", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}), nil
}
