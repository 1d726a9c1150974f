package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/logger"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500 and logs it with the request ID.
// It must run after RequestID, RequestLogger and Metrics so those still see the response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.FromContext(c).Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
