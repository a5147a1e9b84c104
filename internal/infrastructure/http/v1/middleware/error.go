package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/pkg/logger"
)

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler converts errors attached via c.Error into JSON responses.
// AppError maps to its HTTP status; anything else becomes a 500 with the
// underlying error logged but not exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// A handler may have already written a body (e.g. streamed export).
		if c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				logger.Error(c.Request.Context(), "request failed",
					"code", appErr.Code,
					"error", appErr.Error(),
				)
			}
			c.JSON(appErr.HTTPStatus, errorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    apperror.CodeInternal,
			Message: "internal server error",
			Details: map[string]any{
				"request_id": appctx.GetRequestID(c.Request.Context()),
			},
		})
	}
}
