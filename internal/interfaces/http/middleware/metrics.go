package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// RequestMetrics records request counts, latency, and in-flight gauge per
// route template.  The template keeps label cardinality bounded; requests
// that match no route are grouped under "unmatched".
func RequestMetrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.HTTPActiveRequests.WithLabelValues(c.Request.Method, route).Inc()
		c.Next()
		m.HTTPActiveRequests.WithLabelValues(c.Request.Method, route).Dec()

		prometheus.RecordHTTPRequest(m, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
