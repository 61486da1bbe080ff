package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/handler"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// errorResponse is the error envelope for all API errors. Detail is a
// string, or a list of field issues for validation failures.
type errorResponse struct {
	Detail any `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"detail": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, detail := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
		}
		_ = c.JSON(code, errorResponse{Detail: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Issues
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrShortPassword),
		errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Not enough permissions"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
