package admin

import (
	"time"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ListStaff lists staff accounts for the console.
func (h *Handler) ListStaff(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	filter := repository.UserListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    c.Query("keyword"),
		Role:       c.Query("role"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternalError, "staff list failed", err)
		return
	}

	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetStaff returns one staff account.
func (h *Handler) GetStaff(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid staff id", nil)
		return
	}

	user, err := h.UserAdminService.Get(userID)
	if err != nil {
		respondWithMappedError(c, err, staffAdminErrorRules, response.CodeInternalError, "staff fetch failed")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// CreateStaffRequest is the console staff create payload.
type CreateStaffRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}

// CreateStaff provisions a staff account.
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	user, err := h.UserAdminService.Create(service.AdminCreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Department:  req.Department,
	})
	if err != nil {
		respondWithMappedError(c, err, staffAdminErrorRules, response.CodeInternalError, "staff create failed")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateStaffRequest is the console staff update payload; absent fields
// are unchanged.
type UpdateStaffRequest struct {
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Status      *string `json:"status"`
}

// UpdateStaff edits a staff account.
func (h *Handler) UpdateStaff(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid staff id", nil)
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	user, err := h.UserAdminService.Update(userID, service.AdminUpdateUserInput{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Department:  req.Department,
		Status:      req.Status,
	})
	if err != nil {
		respondWithMappedError(c, err, staffAdminErrorRules, response.CodeInternalError, "staff update failed")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// BatchStaffStatusRequest toggles several staff accounts at once.
type BatchStaffStatusRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// BatchStaffStatus enables or disables a set of staff accounts.
func (h *Handler) BatchStaffStatus(c *gin.Context) {
	var req BatchStaffStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	affected, err := h.UserAdminService.BatchSetStatus(req.UserIDs, req.Status)
	if err != nil {
		respondWithMappedError(c, err, staffAdminErrorRules, response.CodeInternalError, "staff batch update failed")
		return
	}
	response.Success(c, gin.H{"affected": affected})
}

// ResetStaffPasswordRequest carries the replacement password.
type ResetStaffPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetStaffPassword sets a new password and revokes existing tokens.
func (h *Handler) ResetStaffPassword(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid staff id", nil)
		return
	}

	var req ResetStaffPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.UserAdminService.ResetPassword(userID, req.NewPassword); err != nil {
		respondWithMappedError(c, err, staffAdminErrorRules, response.CodeInternalError, "password reset failed")
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// ListLoginLogs lists staff login attempts for the console.
func (h *Handler) ListLoginLogs(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	filter := repository.UserLoginLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     uint(queryInt(c, "user_id", 0)),
		Email:      c.Query("email"),
		Status:     c.Query("status"),
		FailReason: c.Query("fail_reason"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	logs, total, err := h.UserAdminService.ListLoginLogs(filter)
	if err != nil {
		respondError(c, response.CodeInternalError, "login log list failed", err)
		return
	}

	response.SuccessWithPage(c, logs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
