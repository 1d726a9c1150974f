package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/utils"
	"go.uber.org/zap"
)

// respondError writes the uniform {error, code} body. An empty code is omitted.
func respondError(c *gin.Context, status int, message, code string) {
	body := gin.H{"error": message}
	if code != "" {
		body["code"] = code
	}
	c.JSON(status, body)
}

// respondInternalError logs err with the request ID and reports it to the client verbatim
func respondInternalError(c *gin.Context, err error) {
	logger.FromContext(c).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error: " + err.Error(),
	})
}

// bindJSON decodes the request body into req. A missing or blank body leaves req untouched.
// It writes a 400 INVALID_JSON and returns false when the body does not decode.
func bindJSON(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	raw, err := c.GetRawData()
	if err != nil {
		respondInternalError(c, err)
		return false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return true
	}
	if err := binding.JSON.BindBody(raw, req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON body: "+err.Error(), "INVALID_JSON")
		return false
	}
	return true
}

// queryInt reads an integer query parameter the lenient way the clients send it.
// present is false when the parameter is absent or empty.
func queryInt(c *gin.Context, key string) (value int, present bool, valid bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false, false
	}
	value, valid = utils.ParseLeadingInt(raw)
	return value, true, valid
}

// trimOrNil trims s and maps an empty result to nil
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// emptyToNil maps an empty string to nil without trimming
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// isUniqueViolation detects unique-constraint failures from postgres and sqlite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
