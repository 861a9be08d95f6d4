package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "...", "details": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, details := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Details: details})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router) plus errors raised
	// by the middleware gates. A wrapped internal error becomes the details
	// field for client-attributable failures only.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		details := ""
		if he.Internal != nil && he.Code < http.StatusInternalServerError {
			details = he.Internal.Error()
		}
		return he.Code, fmt.Sprintf("%v", he.Message), details
	}

	// Known domain errors have deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, err.Error(), ""
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error(), ""
	case errors.Is(err, domain.ErrInvalidLogin):
		return http.StatusUnauthorized, domain.ErrInvalidLogin.Error(), ""
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSubcategoryNotFound):
		return http.StatusNotFound, "category or subcategory not found", ""
	case errors.Is(err, domain.ErrPromptNotFound):
		return http.StatusNotFound, "prompt not found", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", ""
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists", ""
	case errors.Is(err, domain.ErrGenerationFailed):
		// Upstream provider failure: surface the provider's message so the
		// client can distinguish a timeout from a refusal.
		return http.StatusBadGateway, domain.ErrGenerationFailed.Error(), err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", ""
}
