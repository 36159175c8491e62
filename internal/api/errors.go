package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/eventhub/internal/events"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// without leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return "Validation error"
	case errors.Is(err, context.DeadlineExceeded):
		return "Event dispatch timed out"
	case errors.Is(err, events.ErrListenerFailed):
		return "Event listener failed"
	default:
		return "An unexpected error occurred"
	}
}
