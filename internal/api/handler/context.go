package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/api/middleware"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// ctxIdentity extracts the Identity attached by the Auth middleware. Its
// absence on a protected route means the middleware chain is miswired, but
// the response is still a clean 401, never a panic.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}
