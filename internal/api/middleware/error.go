package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apperrors "github.com/vizlet-labs/vizlet-backend-go/pkg/errors"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/utils"
)

// ErrorHandlingMiddleware recovers panics with enhanced logging and a
// standardized error response
func ErrorHandlingMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"ip":          c.ClientIP(),
			"user_agent":  c.GetHeader("User-Agent"),
			"request_id":  GetRequestID(c),
			"panic":       fmt.Sprintf("%v", recovered),
			"stack_trace": string(debug.Stack()),
		}).Error("Panic recovered in API middleware")

		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}

// ErrorResponseMiddleware converts errors attached to the context into
// standardized responses. Handlers report failures with c.Error and abort;
// the last error wins.
func ErrorResponseMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperrors.GetStatusCode(err)
		message := "Internal server error"

		var details interface{}
		if appErr, ok := err.(*apperrors.AppError); ok {
			message = appErr.Message
			if appErr.Details != "" {
				details = map[string]interface{}{"reason": appErr.Details}
			}
		}

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": GetRequestID(c),
			"error":      err.Error(),
		}).Error("API request error")

		if !c.Writer.Written() {
			utils.SendErrorWithDetails(c, status, message, details)
		}
	}
}
