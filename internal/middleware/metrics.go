package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/service"
)

// Metrics observes every request for Prometheus. The route template is
// preferred over the raw URL so /api/conductas/:id stays one series.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
