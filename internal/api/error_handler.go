package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs server-side failures with their cause, never sending it to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router) and handler-built ones.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logFailure(log, c, he.Code, he.Internal)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTrackerNotFound):
		return http.StatusNotFound, "tracker not found"
	case errors.Is(err, domain.ErrInvalidTrackerID):
		return http.StatusBadRequest, "invalid tracker id"
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	logFailure(log, c, http.StatusInternalServerError, err)
	return http.StatusInternalServerError, "internal server error"
}

func logFailure(log zerolog.Logger, c echo.Context, code int, cause error) {
	ev := log.Error().
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path())
	if cause != nil {
		ev = ev.Err(cause)
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		ev = ev.Str("request_id", id)
	}
	ev.Msg("request failed")
}
