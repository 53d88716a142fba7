package admin

import (
	"time"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ShiftRequest is the console shift create/update payload.
type ShiftRequest struct {
	Department  string    `json:"department" binding:"required"`
	RoleTitle   string    `json:"role_title"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	Capacity    int       `json:"capacity"`
	Notes       string    `json:"notes"`
	IsPublished bool      `json:"is_published"`
}

func (r ShiftRequest) toInput() service.ShiftInput {
	return service.ShiftInput{
		Department:  r.Department,
		RoleTitle:   r.RoleTitle,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		Capacity:    r.Capacity,
		Notes:       r.Notes,
		IsPublished: r.IsPublished,
	}
}

// ListShifts lists all shifts, drafts included.
func (h *Handler) ListShifts(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 50),
	)
	filter := repository.ShiftListFilter{
		Page:       page,
		PageSize:   pageSize,
		Department: c.Query("department"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	shifts, total, err := h.ScheduleService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternalError, "shift list failed", err)
		return
	}

	response.SuccessWithPage(c, shifts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetShift returns a shift with its assignments.
func (h *Handler) GetShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	shift, assignments, err := h.ScheduleService.GetShift(shiftID)
	if err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift fetch failed")
		return
	}
	response.Success(c, gin.H{
		"shift":       shift,
		"assignments": assignments,
	})
}

// CreateShift adds a shift.
func (h *Handler) CreateShift(c *gin.Context) {
	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	shift, err := h.ScheduleService.CreateShift(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift create failed")
		return
	}
	response.Success(c, gin.H{"shift": shift})
}

// UpdateShift edits a shift.
func (h *Handler) UpdateShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	shift, err := h.ScheduleService.UpdateShift(shiftID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift update failed")
		return
	}
	response.Success(c, gin.H{"shift": shift})
}

// DeleteShift removes a shift and its assignments.
func (h *Handler) DeleteShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	if err := h.ScheduleService.DeleteShift(shiftID); err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// PublishShiftRequest toggles shift visibility.
type PublishShiftRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// PublishShift publishes or unpublishes a shift.
func (h *Handler) PublishShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	var req PublishShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Published == nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	shift, err := h.ScheduleService.PublishShift(shiftID, *req.Published)
	if err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift publish failed")
		return
	}
	response.Success(c, gin.H{"shift": shift})
}

// AssignShiftRequest names the staff member to place on a shift.
type AssignShiftRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AssignShift places a staff member on a shift, capacity permitting.
func (h *Handler) AssignShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	var req AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	assignment, err := h.ScheduleService.Assign(shiftID, req.UserID)
	if err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift assign failed")
		return
	}
	response.Success(c, gin.H{"assignment": assignment})
}

// UnassignShift removes a staff member from a shift.
func (h *Handler) UnassignShift(c *gin.Context) {
	shiftID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid shift id", nil)
		return
	}

	var req AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.ScheduleService.Unassign(shiftID, req.UserID); err != nil {
		respondWithMappedError(c, err, shiftAdminErrorRules, response.CodeInternalError, "shift unassign failed")
		return
	}
	response.Success(c, gin.H{"unassigned": true})
}
