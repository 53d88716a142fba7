package shared

import (
	"github.com/e11even-central/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads a uint value from the gin context, writing the
// error response itself when the value is missing or malformed.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUserRequired, "authentication required", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeValidationError, "invalid identity value", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeValidationError, "invalid identity value", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternalError, "unexpected identity type", nil)
		return 0, false
	}
}
