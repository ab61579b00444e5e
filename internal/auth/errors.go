package auth

import "errors"

// Authorization failures. The first two mean the caller is not authenticated
// (401); the last two mean an authenticated caller lacks a permission (403).
var (
	ErrMissingToken      = errors.New("missing bearer token")
	ErrInvalidToken      = errors.New("invalid bearer token")
	ErrInsufficientScope = errors.New("token lacks the required scope")
	ErrForbiddenRole     = errors.New("principal lacks the required role")
)
