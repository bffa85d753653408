package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/logger"
)

// ErrorHandler translates errors attached to the context into the JSON
// wire contract. Client errors pass through with their message; anything
// unrecognized becomes a generic 500 so internals are never exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && logger.Log != nil {
				logger.Log.Error("request failed", "error", appErr.Err, "path", c.FullPath())
			}
			response.Message(c, appErr.Code, appErr.Message)
			return
		}

		if logger.Log != nil {
			logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
		}
		response.Message(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
