package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kendall-kelly/snapfix-api/logger"
	"go.uber.org/zap"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one, echoes it
// back and attaches a request-scoped logger to the context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(logger.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(logger.RequestIDHeader, requestID)
		}
		c.Header(logger.RequestIDHeader, requestID)

		c.Set(logger.RequestIDKey, requestID)
		c.Set(logger.LoggerKey, logger.GetLogger().With(zap.String("request_id", requestID)))

		c.Next()
	}
}
