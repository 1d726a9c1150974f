package logger

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys shared with the request middleware
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
	LoggerKey       = "logger"
)

// FromContext returns the request-scoped logger, or the global logger tagged
// with whatever request ID is available
func FromContext(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(LoggerKey); ok {
		if scoped, ok := l.(*zap.Logger); ok {
			return scoped
		}
	}

	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		requestID = c.GetHeader(RequestIDHeader)
	}
	if requestID == "" {
		requestID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", requestID))
}
