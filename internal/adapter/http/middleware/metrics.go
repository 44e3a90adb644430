package middleware

import (
	"strconv"
	"time"

	"skillink/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency by route template, not raw path.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
