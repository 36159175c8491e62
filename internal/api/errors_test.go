package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/eventhub/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	validationErr := validator.New().Var("", "required")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     validationErr,
			status:  http.StatusBadRequest,
			message: "Validation error",
		},
		{
			name:    "listener failure",
			err:     &events.ListenerError{Channel: "c", Err: errors.New("boom")},
			status:  http.StatusInternalServerError,
			message: "Event listener failed",
		},
		{
			name:    "deadline",
			err:     context.DeadlineExceeded,
			status:  http.StatusGatewayTimeout,
			message: "Event dispatch timed out",
		},
		{
			name:    "unknown",
			err:     errors.New("something else"),
			status:  http.StatusInternalServerError,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.message, GetSafeErrorMessage(tt.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
