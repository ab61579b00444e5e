package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a payload fails validation.
	// It is usually wrapped by a more detailed error listing the invalid fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not a 24-character hex string.
	ErrInvalidID = errors.New("invalid ID")
)
