package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

// RequireAdmin gates a route on the administrator role. It must run after
// Auth (it never parses credentials itself): no attached Identity is 401.
//
// The persisted User.Role is the single source of truth. The role claim in
// the token is only a client-UX hint, so the user is re-fetched from storage
// on every admin-gated request. A caller whose token claims ADMIN but whose
// stored role is USER is rejected, as is one whose account no longer exists.
func RequireAdmin(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "administrator privileges required")
				}
				return err
			}
			if user.Role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "administrator privileges required")
			}

			return next(c)
		}
	}
}
