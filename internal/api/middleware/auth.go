package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/auth"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// identityKey is the echo context key the verified Identity is stored under.
// It is set at most once per request, before any handler logic runs.
const identityKey = "identity"

// Auth verifies the bearer credential and attaches the resolved Identity to
// the request context. A missing or malformed header is 401; a present but
// undecodable credential is 403 with a diagnostic detail (never the secret).
func Auth(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			identity, err := codec.Decode(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token").SetInternal(err)
			}

			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// OptionalAuth runs the same decode as Auth but never rejects: on any
// failure the request simply continues anonymously. For endpoints that may
// tailor output for authenticated callers.
func OptionalAuth(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if identity, err := codec.Decode(token); err == nil {
					c.Set(identityKey, *identity)
				}
			}
			return next(c)
		}
	}
}

// IdentityFrom extracts the Identity attached by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
