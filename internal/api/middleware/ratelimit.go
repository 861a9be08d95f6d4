package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Limiter abstracts the fixed-window counter store (Redis in production).
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit applies a fixed-window limit per client IP. The name keeps
// windows of different route groups (general, auth, prompt) independent.
// When the counter store is unreachable the request is allowed through:
// the limiter protects the AI provider budget, it is not a security gate.
func RateLimit(limiter Limiter, name string, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", name, c.RealIP())

			allowed, err := limiter.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", name).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":      "Too many requests, please try again later.",
					"retryAfter": window.String(),
				})
			}
			return next(c)
		}
	}
}
