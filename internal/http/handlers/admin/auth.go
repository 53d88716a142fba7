package admin

import (
	"time"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the console login payload.
type LoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// Captcha issues an image challenge for the console login form.
func (h *Handler) Captcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternalError, "captcha generation failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":   true,
		"challenge": challenge,
	})
}

// Login authenticates a console administrator.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.CaptchaService.Verify(req.CaptchaPayload); err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternalError, "captcha verification failed")
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternalError, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// ChangePasswordRequest is the console password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the caller's console password.
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternalError, "password change failed")
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// Me returns the authenticated console account.
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminAccountService.Get(adminID)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternalError, "admin fetch failed")
		return
	}
	response.Success(c, gin.H{
		"admin": gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
		},
	})
}
