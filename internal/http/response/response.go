package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform API response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// PageEnvelope adds pagination to a list response.
type PageEnvelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Pagination carries list paging info.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Success writes a 200 success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// SuccessWithPage writes a paginated success envelope.
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageEnvelope{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// Error writes a failure envelope; the HTTP status follows the code.
func Error(c *gin.Context, code, message string) {
	c.JSON(StatusForCode(code), Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: requestID(c),
		},
	})
}

// ErrorWithStatus writes a failure envelope with an explicit HTTP status.
func ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: requestID(c),
		},
	})
}

// BadRequest writes a validation failure.
func BadRequest(c *gin.Context, message string) {
	Error(c, CodeValidationError, message)
}

// Unauthorized writes an authentication failure.
func Unauthorized(c *gin.Context, message string) {
	Error(c, CodeUserRequired, message)
}

// Forbidden writes an authorization failure.
func Forbidden(c *gin.Context, message string) {
	Error(c, CodeForbidden, message)
}

// NotFound writes a missing-resource failure.
func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message)
}

// Internal writes an unexpected server failure.
func Internal(c *gin.Context, message string) {
	Error(c, CodeInternalError, message)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
