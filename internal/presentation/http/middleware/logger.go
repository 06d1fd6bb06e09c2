package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware assigns a request id and writes one structured access log
// line per request.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.NewRequestID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if waiter := GetWaiterID(c); waiter != nil {
			entry = entry.WithField("waiter_id", *waiter)
		}

		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last().Err).Error("Request failed")
			return
		}
		entry.Info("Request handled")
	}
}
