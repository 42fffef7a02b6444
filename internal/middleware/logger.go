package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request once it completes.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		case status >= 400:
			m.l.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		default:
			m.l.Debugf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}

// Recovery turns panics into 500 responses and logs them.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		m.l.Errorf(c.Request.Context(), "middleware.Recovery: panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatus(500)
	})
}
