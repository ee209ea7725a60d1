package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
}

const unexpectedMessage = "An unexpected error occurred"

// StatusOf maps an error onto an HTTP status and the body sent to clients.
// Unexpected errors never leak their cause.
func StatusOf(err error) (int, ErrorBody) {
	var ae *apperr.Error
	var he *echo.HTTPError

	switch {
	case errors.As(err, &ae):
		switch ae.Kind {
		case apperr.KindNotFound:
			return http.StatusNotFound, ErrorBody{Message: ae.Message}
		case apperr.KindInvalidData:
			return http.StatusBadRequest, ErrorBody{Message: ae.Message, Field: ae.Field}
		}
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		if he.Code >= http.StatusInternalServerError {
			msg = unexpectedMessage
		}
		return he.Code, ErrorBody{Message: msg}
	}
	return http.StatusInternalServerError, ErrorBody{Message: unexpectedMessage}
}

// ErrorHandler is installed as echo's HTTPErrorHandler.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := StatusOf(err)
		body.Timestamp = time.Now().UTC()
		body.Status = status
		body.Error = http.StatusText(status)

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("request_id", RequestIDFrom(c)).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
