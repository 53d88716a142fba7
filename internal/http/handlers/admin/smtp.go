package admin

import (
	"github.com/e11even-central/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SendTestEmailRequest is the SMTP smoke-test payload.
type SendTestEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendTestEmail sends a throwaway message to verify SMTP settings.
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "SMTP configuration test"
	}
	body := req.Body
	if body == "" {
		body = "This is a test message confirming the SMTP settings work."
	}

	if err := h.EmailService.SendCustomEmail(req.To, subject, body); err != nil {
		respondError(c, response.CodeValidationError, "test email failed", err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}
