package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Fail classifies err and sends the matching error response. Causes of
// server-side failures are logged, never returned.
func Fail(c *gin.Context, err error) {
	status, code, message := apperr.Describe(err)
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.failure", map[string]any{
			"request_id": c.GetString("requestId"),
			"code":       code,
			"error":      err.Error(),
		})
	}
	Error(c, status, code, message, nil)
}
