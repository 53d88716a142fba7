package admin

import (
	"github.com/e11even-central/api/internal/http/response"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ListAdminAccounts lists console accounts.
func (h *Handler) ListAdminAccounts(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	admins, total, err := h.AdminAccountService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternalError, "admin list failed", err)
		return
	}

	views := make([]gin.H, 0, len(admins))
	for _, a := range admins {
		views = append(views, gin.H{
			"id":            a.ID,
			"username":      a.Username,
			"is_super":      a.IsSuper,
			"last_login_at": a.LastLoginAt,
			"created_at":    a.CreatedAt,
		})
	}

	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// CreateAdminAccountRequest is the console account create payload.
type CreateAdminAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminAccount provisions a console account.
func (h *Handler) CreateAdminAccount(c *gin.Context) {
	var req CreateAdminAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	admin, err := h.AdminAccountService.Create(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternalError, "admin create failed")
		return
	}
	response.Success(c, gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// DeleteAdminAccount removes a console account. Super admins cannot be
// deleted.
func (h *Handler) DeleteAdminAccount(c *gin.Context) {
	adminID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid admin id", nil)
		return
	}

	if err := h.AdminAccountService.Delete(adminID); err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternalError, "admin delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RevokeAdminTokens invalidates every token issued to a console account.
func (h *Handler) RevokeAdminTokens(c *gin.Context) {
	adminID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid admin id", nil)
		return
	}

	if err := h.AdminAccountService.RevokeTokens(adminID); err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternalError, "token revoke failed")
		return
	}
	response.Success(c, gin.H{"revoked": true})
}
