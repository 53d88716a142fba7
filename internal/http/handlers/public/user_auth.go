package public

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// RegisterRequest is the staff registration payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Department  string `json:"department"`
	InviteCode  string `json:"invite_code"`
}

// LoginRequest is the staff login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the profile update payload.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Department  *string `json:"department"`
}

// ChangePasswordRequest is the password rotation payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"role":          user.Role,
		"department":    user.Department,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
}

// Register creates a staff account.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Department:  req.Department,
		InviteCode:  req.InviteCode,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternalError, "registration failed")
		return
	}

	response.Success(c, gin.H{"user": userView(user)})
}

// Login authenticates a staff member.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, service.LoginMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternalError, "login failed")
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetProfile(userID)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternalError, "profile fetch failed")
		return
	}
	response.Success(c, gin.H{"user": userView(user)})
}

// UpdateMe edits the caller's profile.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Department:  req.Department,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternalError, "profile update failed")
		return
	}
	response.Success(c, gin.H{"user": userView(user)})
}

// ChangePassword rotates the caller's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternalError, "password change failed")
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// MyLoginLogs lists the caller's recent login attempts.
func (h *Handler) MyLoginLogs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	logs, total, err := h.UserAuthService.ListLoginLogs(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternalError, "login log fetch failed", err)
		return
	}

	response.SuccessWithPage(c, logs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
