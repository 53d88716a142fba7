package public

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// CreateTipRequest is the tip create payload.
type CreateTipRequest struct {
	ProviderID    uint   `json:"provider_id" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	AppointmentID *uint  `json:"appointment_id"`
	Message       string `json:"message"`
}

// UpdateTipRequest is the tip update payload; absent fields are unchanged.
type UpdateTipRequest struct {
	Amount        *string `json:"amount"`
	PaymentMethod *string `json:"payment_method"`
	Message       *string `json:"message"`
}

// CreateTip records a new pending tip.
func (h *Handler) CreateTip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(c, response.CodeValidationError, "amount must be a decimal string", nil)
		return
	}

	tip, err := h.TipService.Create(userID, service.CreateTipInput{
		ProviderID:    req.ProviderID,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		AppointmentID: req.AppointmentID,
		Message:       req.Message,
	})
	if err != nil {
		respondWithMappedError(c, err, tipErrorRules, response.CodeInternalError, "tip create failed")
		return
	}
	response.Success(c, gin.H{"tip": tip})
}

// GetTip returns one tip visible to the caller.
func (h *Handler) GetTip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	tipID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid tip id", nil)
		return
	}

	tip, err := h.TipService.Get(userID, tipID)
	if err != nil {
		respondWithMappedError(c, err, tipErrorRules, response.CodeInternalError, "tip fetch failed")
		return
	}
	response.Success(c, gin.H{"tip": tip})
}

// UpdateTip edits a pending tip.
func (h *Handler) UpdateTip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	tipID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid tip id", nil)
		return
	}

	var req UpdateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	input := service.UpdateTipInput{
		PaymentMethod: req.PaymentMethod,
		Message:       req.Message,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			respondError(c, response.CodeValidationError, "amount must be a decimal string", nil)
			return
		}
		input.Amount = &amount
	}

	tip, err := h.TipService.Update(userID, tipID, input)
	if err != nil {
		respondWithMappedError(c, err, tipErrorRules, response.CodeInternalError, "tip update failed")
		return
	}
	response.Success(c, gin.H{"tip": tip})
}

// DeleteTip removes a pending tip.
func (h *Handler) DeleteTip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	tipID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid tip id", nil)
		return
	}

	if err := h.TipService.Delete(userID, tipID); err != nil {
		respondWithMappedError(c, err, tipErrorRules, response.CodeInternalError, "tip delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListMyTips lists the caller's tips as tipper or provider.
func (h *Handler) ListMyTips(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	tips, total, err := h.TipService.ListMine(userID, c.Query("role"), repository.TipListFilter{
		Page:          page,
		PageSize:      pageSize,
		PaymentStatus: c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternalError, "tip list failed", err)
		return
	}

	response.SuccessWithPage(c, tips, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// MyTipStats returns the caller's received-tip totals.
func (h *Handler) MyTipStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	stats, err := h.TipService.Stats(userID)
	if err != nil {
		respondError(c, response.CodeInternalError, "tip stats failed", err)
		return
	}
	response.Success(c, gin.H{"stats": stats})
}
