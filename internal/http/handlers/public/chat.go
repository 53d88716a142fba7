package public

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// PostMessageRequest is the chat message payload.
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListChannels lists channels visible to the caller.
func (h *Handler) ListChannels(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	channels, err := h.ChatService.ListChannelsForUser(userID)
	if err != nil {
		respondError(c, response.CodeInternalError, "channel list failed", err)
		return
	}
	response.Success(c, gin.H{"channels": channels})
}

// JoinChannel adds the caller to a public channel.
func (h *Handler) JoinChannel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	member, err := h.ChatService.Join(userID, channelID)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternalError, "channel join failed")
		return
	}
	response.Success(c, gin.H{"member": member})
}

// ListMessages returns channel messages newest first.
func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 50),
	)
	messages, total, err := h.ChatService.ListMessages(userID, repository.ChatMessageListFilter{
		Page:      page,
		PageSize:  pageSize,
		ChannelID: channelID,
		BeforeID:  uint(queryInt(c, "before_id", 0)),
	})
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternalError, "message list failed")
		return
	}

	response.SuccessWithPage(c, messages, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// MarkChannelRead advances the caller's read marker to the newest
// message.
func (h *Handler) MarkChannelRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	member, err := h.ChatService.MarkRead(userID, channelID)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternalError, "read marker update failed")
		return
	}
	response.Success(c, gin.H{"member": member})
}

// PostMessage appends a message to a channel.
func (h *Handler) PostMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	channelID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid channel id", nil)
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	message, err := h.ChatService.PostMessage(userID, channelID, service.PostMessageInput{Body: req.Body})
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternalError, "message post failed")
		return
	}
	response.Success(c, gin.H{"message": message})
}
