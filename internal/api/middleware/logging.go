package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/logger"
)

// LoggingMiddleware returns a gin.HandlerFunc that feeds the batch logger.
// Successful requests are summarized in batches; everything else is logged
// immediately.
func LoggingMiddleware(log *logger.BatchLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		log.LogRequest(c.Request.Method, path, status, latency, logrus.Fields{
			"client_ip":     c.ClientIP(),
			"method":        c.Request.Method,
			"path":          path,
			"status_code":   status,
			"latency":       latency,
			"user_agent":    c.Request.UserAgent(),
			"request_id":    GetRequestID(c),
			"error_message": c.Errors.ByType(gin.ErrorTypePrivate).String(),
		})
	}
}
