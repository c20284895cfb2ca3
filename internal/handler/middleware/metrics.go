package middleware

import (
	"strconv"
	"time"

	"shareit/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by the route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
