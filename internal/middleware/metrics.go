package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beehayv/beehayv-api/internal/service"
)

// Metrics records duration and status for every request. The route template
// is preferred over the raw path so /subjects/1 and /subjects/2 share a label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
