package admin

import (
	"time"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ListTips lists gratuities across all staff for the console.
func (h *Handler) ListTips(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	filter := repository.TipListFilter{
		Page:          page,
		PageSize:      pageSize,
		TipperID:      uint(queryInt(c, "tipper_id", 0)),
		ProviderID:    uint(queryInt(c, "provider_id", 0)),
		PaymentStatus: c.Query("status"),
		PaymentMethod: c.Query("method"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	tips, total, err := h.TipService.ListAdmin(filter)
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

// ListPaymentSessions lists payment sessions for the console.
func (h *Handler) ListPaymentSessions(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	filter := repository.PaymentSessionListFilter{
		Page:       page,
		PageSize:   pageSize,
		TipID:      uint(queryInt(c, "tip_id", 0)),
		TipperID:   uint(queryInt(c, "tipper_id", 0)),
		ProviderID: uint(queryInt(c, "provider_id", 0)),
		Status:     c.Query("status"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	sessions, total, err := h.PaymentSessionService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternalError, "payment session list failed", err)
		return
	}

	response.SuccessWithPage(c, sessions, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// SweepPaymentSessions expires overdue awaiting sessions on demand.
// The worker runs the same sweep on a timer.
func (h *Handler) SweepPaymentSessions(c *gin.Context) {
	swept, err := h.PaymentSessionService.SweepExpired(queryInt(c, "limit", 200))
	if err != nil {
		respondError(c, response.CodeInternalError, "payment session sweep failed", err)
		return
	}
	response.Success(c, gin.H{"swept": swept})
}
