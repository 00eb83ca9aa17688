package middleware

import (
	"time"

	"github.com/eaglebank/account-service/shared/logger"
	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one record per request once the handler chain is done.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logger.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIp":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("request failed", fields)
			return
		}
		logger.Info("request handled", fields)
	}
}
