package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/anime-api/internal/api/shared"
	"github.com/phrazzld/anime-api/internal/auth"
	"github.com/phrazzld/anime-api/internal/domain"
	"github.com/phrazzld/anime-api/internal/platform/logger"
	"github.com/phrazzld/anime-api/internal/redact"
	"github.com/phrazzld/anime-api/internal/store"
	"github.com/phrazzld/anime-api/internal/validation"
)

// ErrUnsupportedMediaType is returned for writes whose body is not JSON.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// HTTPError carries an explicit status for the fallback handler. Message is only
// sent to the client when Expose is true.
type HTTPError struct {
	Status  int
	Message string
	Expose  bool
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var httpErr *HTTPError

	switch {
	case errors.As(err, &httpErr) && httpErr.Status != 0:
		return httpErr.Status

	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrInsufficientScope),
		errors.Is(err, auth.ErrForbiddenRole):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidBody):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Internal Server Error"
	}

	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Expose && httpErr.Message != "" {
			return httpErr.Message
		}
		return http.StatusText(MapErrorToStatusCode(err))

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInsufficientScope):
		return "Insufficient scope"
	case errors.Is(err, auth.ErrForbiddenRole):
		return "Forbidden"

	case errors.Is(err, store.ErrNotFound):
		return "Not Found"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid JSON body"
	case errors.Is(err, shared.ErrBodyTooLarge):
		return "Request body too large"
	case errors.Is(err, ErrUnsupportedMediaType):
		return "Content-Type must be application/json"

	default:
		return "Internal Server Error"
	}
}

// RespondWithError answers a handler-local error at the point of detection.
// Validation failures carry their field errors as details. Anything that does
// not map to a client error goes to HandleAPIError.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		HandleAPIError(w, r, err)
		return
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		logger.FromContext(r.Context()).Debug("payload rejected",
			slog.Int("invalid_fields", len(verr.Fields)))
		shared.RespondWithDetails(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), verr.Fields)
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// HandleAPIError is the process-wide fallback for errors no handler resolved.
// It logs the redacted error and answers with a generic 500 unless the error is
// an exposed HTTPError.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Expose {
		status := httpErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Error("unhandled error",
		slog.String("error", redact.Error(err)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
}
