package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/tourism/internal/lib/metrics"
	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latency per route template.
// Unmatched routes share one label to keep cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			metrics.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(responseStatus(c, err))).Inc()
			metrics.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
