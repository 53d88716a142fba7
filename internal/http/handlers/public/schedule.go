package public

import (
	"time"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ListShifts lists published shifts, optionally windowed by from/to.
// The caller's own shift IDs ride along so the roster can flag them.
func (h *Handler) ListShifts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
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

	shifts, total, err := h.ScheduleService.ListPublished(filter)
	if err != nil {
		respondError(c, response.CodeInternalError, "shift list failed", err)
		return
	}

	myShiftIDs := map[uint]bool{}
	if assignments, err := h.ScheduleService.ListMyAssignments(userID); err == nil {
		for _, a := range assignments {
			myShiftIDs[a.ShiftID] = true
		}
	}
	views := make([]gin.H, 0, len(shifts))
	for _, shift := range shifts {
		views = append(views, gin.H{
			"id":           shift.ID,
			"department":   shift.Department,
			"role_title":   shift.RoleTitle,
			"starts_at":    shift.StartsAt,
			"ends_at":      shift.EndsAt,
			"capacity":     shift.Capacity,
			"notes":        shift.Notes,
			"is_published": shift.IsPublished,
			"mine":         myShiftIDs[shift.ID],
		})
	}

	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// MyAssignments lists the caller's shift assignments.
func (h *Handler) MyAssignments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	assignments, err := h.ScheduleService.ListMyAssignments(userID)
	if err != nil {
		respondError(c, response.CodeInternalError, "assignment list failed", err)
		return
	}
	response.Success(c, gin.H{"assignments": assignments})
}

// ConfirmAssignment records the caller's confirmation.
func (h *Handler) ConfirmAssignment(c *gin.Context) {
	h.respondAssignment(c, true)
}

// DeclineAssignment records the caller's decline, freeing the slot.
func (h *Handler) DeclineAssignment(c *gin.Context) {
	h.respondAssignment(c, false)
}

func (h *Handler) respondAssignment(c *gin.Context, confirm bool) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid assignment id", nil)
		return
	}

	assignment, err := h.ScheduleService.Respond(userID, assignmentID, confirm)
	if err != nil {
		respondWithMappedError(c, err, scheduleErrorRules, response.CodeInternalError, "assignment response failed")
		return
	}
	response.Success(c, gin.H{"assignment": assignment})
}
