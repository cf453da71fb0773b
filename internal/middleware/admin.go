package middleware

import (
	"context"
	"net/http"

	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type Authorizer interface {
	Authorize(ctx context.Context, r *http.Request) bool
	// Throttled reports whether r presents an admin key from a client that
	// has used up its failed attempts, and how long it has to wait.
	Throttled(r *http.Request) (retryAfter int, throttled bool)
}

// RequireAdmin rejects the request with 401 unless the admin gate accepts
// it. Key guesses past the auth budget get 429 without being checked.
func RequireAdmin(auth Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if retryAfter, ok := auth.Throttled(c.Request()); ok {
				return tooManyRequests(c, retryAfter)
			}

			if !auth.Authorize(c.Request().Context(), c.Request()) {
				return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
			}

			return next(c)
		}
	}
}
