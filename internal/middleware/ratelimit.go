package middleware

import (
	"net/http"
	"strconv"

	"sweetcrumb/internal/lib/ratelimit"
	"sweetcrumb/internal/metrics"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// RateLimit charges every request to budget and answers 429 with a
// Retry-After hint once the client has spent it.
func RateLimit(budget ratelimit.Budget) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := budget.Take(c.Request())
			if res.Allowed {
				return next(c)
			}

			return tooManyRequests(c, budget.RetryAfter(res))
		}
	}
}

func tooManyRequests(c echo.Context, retryAfter int) error {
	metrics.RateLimitRejections.WithLabelValues(c.Path()).Inc()

	c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
	return c.JSON(http.StatusTooManyRequests, response.RateLimited(retryAfter))
}
