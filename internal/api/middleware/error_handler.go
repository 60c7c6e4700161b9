package middleware

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
)

// ErrorHandler middleware handles errors consistently across the API
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Error("Internal server error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)

			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("Unknown panic occurred",
				"recovered", recovered,
				"request_id", requestID,
			)

			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		writeAPIError(c, apiErr)
	})
}

// HandleError is a helper function for handlers to return errors
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr, ok := err.(*errors.APIError); ok {
		apiErr.RequestID = c.GetString("request_id")
		writeAPIError(c, apiErr)
		return
	}

	// Not an APIError, let the recovery middleware classify it
	panic(err)
}

// writeAPIError renders the error. Gateway errors with a remote payload
// forward that payload untouched, so the caller sees exactly what the remote
// service reported.
func writeAPIError(c *gin.Context, apiErr *errors.APIError) {
	status := apiErr.HTTPStatus()

	if apiErr.Kind == errors.KindGateway && len(apiErr.RemoteBody) > 0 && json.Valid(apiErr.RemoteBody) {
		c.Abort()
		c.Data(status, "application/json", apiErr.RemoteBody)
		return
	}

	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(status, apiErr)
}
