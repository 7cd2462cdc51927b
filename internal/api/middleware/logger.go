package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-optimizer/internal/metrics"
)

// Logger logs each request and records the Prometheus HTTP collectors. The
// route template is used as the path label so ids do not explode cardinality.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed.Seconds())

		log.Printf("%s %s -> %s in %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
