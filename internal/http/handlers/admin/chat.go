package admin

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ChannelRequest is the console channel create/update payload.
type ChannelRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	Topic      string `json:"topic"`
	Department string `json:"department"`
	IsPrivate  bool   `json:"is_private"`
}

func (r ChannelRequest) toInput() service.ChannelInput {
	return service.ChannelInput{
		Name:       r.Name,
		Slug:       r.Slug,
		Topic:      r.Topic,
		Department: r.Department,
		IsPrivate:  r.IsPrivate,
	}
}

// ListChannels lists every channel, archived included.
func (h *Handler) ListChannels(c *gin.Context) {
	channels, err := h.ChatService.ListAdminChannels()
	if err != nil {
		respondError(c, response.CodeInternalError, "channel list failed", err)
		return
	}
	response.Success(c, gin.H{"channels": channels})
}

// CreateChannel adds a chat channel.
func (h *Handler) CreateChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	channel, err := h.ChatService.CreateChannel(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, channelAdminErrorRules, response.CodeInternalError, "channel create failed")
		return
	}
	response.Success(c, gin.H{"channel": channel})
}

// UpdateChannel edits a chat channel.
func (h *Handler) UpdateChannel(c *gin.Context) {
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	channel, err := h.ChatService.UpdateChannel(c.Request.Context(), channelID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, channelAdminErrorRules, response.CodeInternalError, "channel update failed")
		return
	}
	response.Success(c, gin.H{"channel": channel})
}

// ArchiveChannel freezes a channel; history stays readable.
func (h *Handler) ArchiveChannel(c *gin.Context) {
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	channel, err := h.ChatService.ArchiveChannel(c.Request.Context(), channelID)
	if err != nil {
		respondWithMappedError(c, err, channelAdminErrorRules, response.CodeInternalError, "channel archive failed")
		return
	}
	response.Success(c, gin.H{"channel": channel})
}

// AddChannelMemberRequest adds one staff member to a channel.
type AddChannelMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

// AddChannelMember places a staff member into any channel, private ones
// included.
func (h *Handler) AddChannelMember(c *gin.Context) {
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	var req AddChannelMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	member, err := h.ChatService.AddMember(channelID, req.UserID, req.Role)
	if err != nil {
		respondWithMappedError(c, err, channelAdminErrorRules, response.CodeInternalError, "member add failed")
		return
	}
	response.Success(c, gin.H{"member": member})
}
