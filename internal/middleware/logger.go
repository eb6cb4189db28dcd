package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rapid-pay-api/internal/logger"
)

// RequestLogger writes one access line per request; 5xx responses and
// requests with gin errors go to the error log as well.
func RequestLogger(skipPaths ...string) gin.HandlerFunc {
	accessLog := logger.NewLogger("access")
	errorLog := logger.NewLogger("error")
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if skip[c.Request.URL.Path] {
			return
		}

		status := c.Writer.Status()
		fields := logrus.Fields{
			"trace_id":   TraceID(c),
			"status":     status,
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"user_agent": c.Request.UserAgent(),
		}
		if actor := Actor(c); actor != "" {
			fields["actor"] = actor
		}

		entry := accessLog.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
		if len(c.Errors) > 0 || status >= http.StatusInternalServerError {
			errorLog.WithFields(fields).Error(c.Errors.String())
		}
	}
}
