package middleware

import (
	"errors"
	"net/http"

	"candidate-tracker-backend/internal/delivery/http/response"
	"candidate-tracker-backend/pkg/apperror"
	"candidate-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the context into the uniform
// response envelope. Non-AppError failures are logged server-side and
// reported with a generic message only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
					logger.Log.Error("Internal error", "path", c.FullPath(), "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				logger.Log.Error("Unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
