package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TraceHeader carries the per-request trace id between services. The
// gateway injects it on forward; backends adopt it so one id threads
// through every log line and response envelope for the request.
const TraceHeader = "X-Trace-Id"

// LoggingMiddleware logs basic request/response details and injects a
// trace_id into context. An inbound X-Trace-Id is reused; otherwise a
// fresh id is generated.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)

		// Process request
		c.Next()

		// Log after response
		latency := time.Since(start)
		status := c.Writer.Status()

		log.Info().
			Str("trace_id", traceID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP Request")
	}
}
