package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"sparknest-backend/internal/delivery/http/response"
	"sparknest-backend/pkg/apperror"
	"sparknest-backend/pkg/logger"
	"sparknest-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const invalidFormMessage = "Invalid form data"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()

		var verr *validation.Error
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(ctx, "request failed",
					slog.String("path", c.FullPath()),
					slog.Any("error", appErr.Err),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
		case errors.As(err, &verr):
			response.Error(c, http.StatusBadRequest, invalidFormMessage, verr.Fields)
		default:
			// SECURITY: Never expose internal error details to clients.
			logger.Log.ErrorContext(ctx, "internal server error",
				slog.String("path", c.FullPath()),
				slog.Any("error", err),
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
