package middleware

import (
	"strconv"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		done := metrics.InFlight()
		defer done()

		start := time.Now()
		c.Next()

		metrics.ObserveRequest(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
