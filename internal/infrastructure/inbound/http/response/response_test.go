package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"noders-content-service/internal/custom_errors"
	"noders-content-service/internal/domain/rules"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"violation", &rules.ViolationError{Rule: rules.RuleImageLimit, Err: custom_errors.ErrImageLimitReached}, http.StatusUnprocessableEntity, ""},
		{"wrapped content error", fmt.Errorf("save: %w", custom_errors.ErrEmptyQuote), http.StatusUnprocessableEntity, ""},
		{"invalid input", custom_errors.ErrInvalidInput, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error()},
		{"block not found", custom_errors.ErrBlockNotFound, http.StatusNotFound, custom_errors.ErrBlockNotFound.Error()},
		{"post not found", custom_errors.ErrPostNotFound, http.StatusNotFound, custom_errors.ErrPostNotFound.Error()},
		{"forbidden", custom_errors.ErrForbidden, http.StatusForbidden, custom_errors.ErrForbidden.Error()},
		{"unauthenticated", custom_errors.ErrUnauthenticated, http.StatusUnauthorized, custom_errors.ErrUnauthenticated.Error()},
		{"too large", custom_errors.ErrImageTooLarge, http.StatusRequestEntityTooLarge, custom_errors.ErrImageTooLarge.Error()},
		{"unsupported", custom_errors.ErrUnsupportedImageType, http.StatusUnsupportedMediaType, custom_errors.ErrUnsupportedImageType.Error()},
		{"database", custom_errors.ErrDatabaseQuery, http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom: secret detail"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Status(tt.err)
			assert.Equal(t, tt.status, status)
			if tt.message != "" {
				assert.Equal(t, tt.message, message)
			} else {
				assert.NotEmpty(t, message)
			}
		})
	}
}
