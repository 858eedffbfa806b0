// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID     = "X-Request-ID"
	contextKeyRequestID = "request_id"
	contextKeyLogger    = "logger"
)

// RequestLogger tags each request with an id (taken from X-Request-ID when
// the client sent one), echoes it back, and logs the outcome.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		entry := log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(contextKeyLogger, entry)

		c.Next()

		status := c.Writer.Status()
		entry = entry.WithFields(logrus.Fields{
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// Logger returns the request-scoped entry, falling back to base outside RequestLogger.
func Logger(c *gin.Context, base logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(contextKeyLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return base
}
