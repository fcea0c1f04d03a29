package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/service"
)

// unmatchedRoute labels requests that hit no registered route, keeping
// arbitrary URLs out of the metric label set.
const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template. Paths in skip
// (e.g. the scrape endpoint) are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
