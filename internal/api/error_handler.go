package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/core/service"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays backend failure statuses without inventing new semantics.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Login failures carry the display message derived from the backend.
	var le *service.LoginError
	if errors.As(err, &le) {
		return http.StatusUnauthorized, le.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrLoginInFlight):
		return http.StatusConflict, "login already in progress"
	case errors.Is(err, domain.ErrScanCooldown):
		return http.StatusTooManyRequests, "scan cooldown active, try again shortly"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, "shipment not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	}

	// A session-store outage is a fault of this service's own storage, not
	// of the tracking backend.
	if errors.Is(err, ports.ErrStoreUnavailable) {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("session store unavailable")
		return http.StatusServiceUnavailable, "session unavailable, try again shortly"
	}

	// Backend responses pass through with their status; the backend owns
	// the semantics of its own failures.
	var be *backend.HTTPError
	if errors.As(err, &be) {
		msg := backend.Detail(err)
		if msg == "" {
			msg = http.StatusText(be.Status)
		}
		return be.Status, msg
	}

	// Unexpected error (transport failure, decode failure): log the real
	// cause, return a generic upstream message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusBadGateway, "tracking backend unavailable"
}
