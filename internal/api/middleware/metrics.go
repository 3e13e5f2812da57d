package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/metrics"
)

// MetricsMiddleware creates middleware for collecting HTTP metrics
func MetricsMiddleware(collector metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		// Process request
		c.Next()

		duration := time.Since(start)

		// Record metrics with Prometheus collector
		if collector != nil {
			collector.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), duration)
		}
	}
}
