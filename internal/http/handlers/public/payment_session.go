package public

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSessionRequest is the payment session create payload.
type CreateSessionRequest struct {
	TipID     uint   `json:"tip_id" binding:"required"`
	ReturnURL string `json:"return_url"`
}

// CompleteSessionRequest is the payment outcome payload.
type CompleteSessionRequest struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

func sessionView(session *models.PaymentSession) gin.H {
	return gin.H{
		"id":             session.ID,
		"reference":      session.Reference,
		"tip_id":         session.TipID,
		"amount":         session.Amount,
		"status":         session.Status,
		"payment_url":    session.PaymentURL,
		"return_url":     session.ReturnURL,
		"transaction_id": session.TransactionID,
		"expires_at":     session.ExpiresAt,
		"completed_at":   session.CompletedAt,
		"created_at":     session.CreatedAt,
	}
}

// CreateSession opens (or returns the active) payment session for a tip.
func (h *Handler) CreateSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	session, err := h.PaymentSessionService.Create(userID, service.CreateSessionInput{
		TipID:     req.TipID,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternalError, "payment session create failed")
		return
	}
	response.Success(c, gin.H{"session": sessionView(session)})
}

// GetSession returns one payment session by reference.
func (h *Handler) GetSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	session, err := h.PaymentSessionService.GetByReference(userID, c.Param("sessionId"))
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternalError, "payment session fetch failed")
		return
	}
	response.Success(c, gin.H{"session": sessionView(session)})
}

// CompleteSession records the payment outcome for a session.
func (h *Handler) CompleteSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	session, err := h.PaymentSessionService.Complete(userID, c.Param("sessionId"), service.CompleteSessionInput{
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternalError, "payment session complete failed")
		return
	}
	response.Success(c, gin.H{"session": sessionView(session)})
}

// CancelSession abandons an awaiting payment session.
func (h *Handler) CancelSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	session, err := h.PaymentSessionService.Cancel(userID, c.Param("sessionId"))
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternalError, "payment session cancel failed")
		return
	}
	response.Success(c, gin.H{"session": sessionView(session)})
}
