package server

import (
	"time"

	"gym24/internal/logger"

	"github.com/gin-gonic/gin"
)

// quietPaths are polled by health checkers and scrapers and only logged at debug.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestLoggingMiddleware logs one structured line per request. Query
// strings are left out since SSE clients carry their token there.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		switch {
		case quietPaths[path]:
			logger.Debug("HTTP request", args...)
		case c.Writer.Status() >= 500:
			logger.Warn("HTTP request", args...)
		default:
			logger.Info("HTTP request", args...)
		}
	}
}
