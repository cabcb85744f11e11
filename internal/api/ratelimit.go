package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a global request budget of rps per second
// with a burst of the same size. Health and metrics probes are exempt so
// monitoring keeps working while prediction traffic is shed.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		switch c.FullPath() {
		case "/health", "/metrics":
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, retry shortly",
			})
			return
		}
		c.Next()
	}
}
