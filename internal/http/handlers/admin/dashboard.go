package admin

import (
	"github.com/e11even-central/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardOverview returns today's headline numbers for the console.
func (h *Handler) DashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview()
	if err != nil {
		respondError(c, response.CodeInternalError, "dashboard overview failed", err)
		return
	}
	response.Success(c, overview)
}

// DashboardTipTrends returns the daily gratuity series.
func (h *Handler) DashboardTipTrends(c *gin.Context) {
	points, err := h.DashboardService.GetTipTrends(queryInt(c, "days", 7))
	if err != nil {
		respondError(c, response.CodeInternalError, "tip trends failed", err)
		return
	}
	response.Success(c, gin.H{"points": points})
}
