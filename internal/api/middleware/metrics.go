package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
)

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// Metrics receives one latency observation per request
	Metrics *metrics.Metrics
	// SkipPaths are not observed, e.g. the metrics endpoint itself
	SkipPaths []string
}

// MetricsMiddleware returns a Fiber middleware recording request latency by route pattern.
// Unmatched requests are recorded under "unmatched" so that arbitrary paths never become labels.
func MetricsMiddleware(config MetricsConfig) fiber.Handler {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skip[path] = true
	}

	return func(c *fiber.Ctx) error {
		if config.Metrics == nil || skip[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		config.Metrics.RecordRequestDuration(route, time.Since(start).Seconds())
		return err
	}
}
