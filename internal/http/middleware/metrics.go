package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/observability"
)

// Metrics records request count and latency per route template. Scrapes of
// the metrics endpoint itself are not counted.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		m.APIInflightInc()
		defer m.APIInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
