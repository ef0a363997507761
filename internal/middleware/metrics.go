package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"transferbff/internal/telemetry"
)

// Metrics records request counts and latency per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}

			telemetry.HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				endpoint,
				strconv.Itoa(responseStatus(c, err)),
			).Inc()

			telemetry.HTTPRequestDuration.WithLabelValues(
				c.Request().Method,
				endpoint,
			).Observe(duration.Seconds())

			return err
		}
	}
}

// responseStatus resolves the status the error handler will write when the
// handler returned an error before committing the response.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
