package config

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const slowRequest = 200 * time.Millisecond

// RequestIDHeader carries the request id to and from the browser.
const RequestIDHeader = "X-Request-Id"

// PerformanceLogger logs every request with its latency and warns about slow ones.
func PerformanceLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		latency := time.Since(start)
		attrs := []any{
			slog.String("request_id", id),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", latency.Milliseconds()),
		}

		if latency > slowRequest {
			log.Warn("slow request", attrs...)
			return
		}
		log.Info("http request", attrs...)
	}
}
