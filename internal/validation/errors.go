package validation

import (
	"strings"

	"github.com/phrazzld/anime-api/internal/domain"
)

// Rules reported for failures that do not come from a validate tag.
const (
	RuleType    = "type"
	RuleUnknown = "unknown"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error aggregates every field error found in a payload.
type Error struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return domain.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, domain.ErrValidation) hold.
func (e *Error) Unwrap() error {
	return domain.ErrValidation
}
