package response

import (
	"errors"
	"log/slog"
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/domain/rules"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every block, post and profile endpoint.
type Envelope struct {
	Success  bool           `json:"success"`
	Block    *model.Block   `json:"block,omitempty"`
	Blocks   []model.Block  `json:"blocks,omitempty"`
	Post     *model.Post    `json:"post,omitempty"`
	Profile  *model.Profile `json:"profile,omitempty"`
	Error    string         `json:"error,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
}

func OK(c echo.Context, status int, body Envelope) error {
	body.Success = true
	return c.JSON(status, body)
}

func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: message})
}

var contentErrors = []error{
	custom_errors.ErrBlockLimitReached,
	custom_errors.ErrImageLimitReached,
	custom_errors.ErrConsecutiveTextBlocks,
	custom_errors.ErrInvalidBlockType,
	custom_errors.ErrEmptyTextBlock,
	custom_errors.ErrTextTooLong,
	custom_errors.ErrWordCountMismatch,
	custom_errors.ErrEmptyQuote,
	custom_errors.ErrQuoteTooLong,
	custom_errors.ErrMissingImageReference,
	custom_errors.ErrInvalidYouTubeURL,
	custom_errors.ErrContentTypeMismatch,
}

// Status maps a service error to its HTTP status and the message shown to
// the caller. Unknown errors become a generic 500.
func Status(err error) (int, string) {
	var violation *rules.ViolationError
	if errors.As(err, &violation) {
		return http.StatusUnprocessableEntity, violation.Error()
	}
	for _, target := range contentErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity, err.Error()
		}
	}

	switch {
	case errors.Is(err, custom_errors.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, custom_errors.ErrBlockNotFound),
		errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrProfileNotFound),
		errors.Is(err, custom_errors.ErrImageNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, custom_errors.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, custom_errors.ErrUnauthenticated), errors.Is(err, custom_errors.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, custom_errors.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, custom_errors.ErrUnsupportedImageType):
		return http.StatusUnsupportedMediaType, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func Error(c echo.Context, log ports.Logger, err error) error {
	status, message := Status(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed",
			slog.String("path", c.Path()),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.String("error", err.Error()))
	}
	return Fail(c, status, message)
}
