package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope shared by every
// service behind the gateway.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	TraceID    string      `json:"traceId"`
	HTTPStatus int         `json:"httpStatus"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		TraceID:    TraceID(c),
		HTTPStatus: status,
	})
}

// Error writes a failure response with the standard envelope.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success:    false,
		Message:    message,
		TraceID:    TraceID(c),
		HTTPStatus: status,
	})
}

// RespondError maps an application error to the envelope. Unknown error
// types become a generic 500 so internals are never exposed.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		Error(c, appErr.Status, appErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, "An unexpected error occurred")
}

// TraceID returns the per-request trace id set by the logging middleware,
// generating one if the middleware did not run.
func TraceID(c *gin.Context) string {
	if id := c.GetString("trace_id"); id != "" {
		return id
	}
	return uuid.New().String()
}
