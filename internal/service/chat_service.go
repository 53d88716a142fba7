package service

import (
	"context"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"
)

const (
	chatChannelListCacheKey = "chat:channels:public"
	chatChannelListCacheTTL = 5 * time.Minute

	maxChatMessageLength = 4000
)

// ChatService manages team channels and messages.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService creates the chat service.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// ChannelInput is the admin create/update request.
type ChannelInput struct {
	Name       string
	Slug       string
	Topic      string
	Department string
	IsPrivate  bool
}

// PostMessageInput is the staff message request.
type PostMessageInput struct {
	Body string
}

/// ListChannelsForUser lists the channels visible to the caller: public
// channels plus private ones they belong to.
func (s *ChatService) ListChannelsForUser(userID uint) ([]models.ChatChannel, error) {
	return s.chatRepo.ListChannelsForUser(userID)
}

// ListPublicChannels lists active public channels. The list is cached
// in redis and invalidated on channel writes.
func (s *ChatService) ListPublicChannels(ctx context.Context) ([]models.ChatChannel, error) {
	var cached []models.ChatChannel
	hit, err := cache.GetJSON(ctx, chatChannelListCacheKey, &cached)
	if err != nil {
		logger.Warnw("chat_channel_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	channels, err := s.chatRepo.ListChannels(false)
	if err != nil {
		return nil, err
	}
	public := make([]models.ChatChannel, 0, len(channels))
	for _, ch := range channels {
		if !ch.IsPrivate {
			public = append(public, ch)
		}
	}

	if err := cache.SetJSON(ctx, chatChannelListCacheKey, public, chatChannelListCacheTTL); err != nil {
		logger.Warnw("chat_channel_cache_write_failed", "error", err)
	}
	return public, nil
}

// Join adds the caller to a public channel. Private channels only
// accept members added from the console.
func (s *ChatService) Join(userID, channelID uint) (*models.ChatMember, error) {
	channel, err := s.chatRepo.GetChannelByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	if channel.IsArchived {
		return nil, ErrChannelArchived
	}
	if channel.IsPrivate {
		return nil, ErrChannelPrivate
	}

	existing, err := s.chatRepo.GetMember(channelID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	member := &models.ChatMember{
		ChannelID: channelID,
		UserID:    userID,
		Role:      constants.ChatMemberRoleMember,
		JoinedAt:  time.Now(),
	}
	if err := s.chatRepo.CreateMember(member); err != nil {
		return nil, err
	}

	logger.Infow("chat_channel_joined", "channel_id", channelID, "user_id", userID)
	return member, nil
}

// ListMessages returns channel messages newest first, with an optional
// before_id cursor for paging backwards.
func (s *ChatService) ListMessages(userID uint, filter repository.ChatMessageListFilter) ([]models.ChatMessage, int64, error) {
	_, member, err := s.requireMember(filter.ChannelID, userID)
	if err != nil {
		return nil, 0, err
	}

	messages, total, err := s.chatRepo.ListMessages(filter)
	if err != nil {
		return nil, 0, err
	}

	// Reading the channel advances the member's read marker.
	if len(messages) > 0 && filter.BeforeID == 0 && messages[0].ID > member.LastReadID {
		member.LastReadID = messages[0].ID
		if err := s.chatRepo.UpdateMember(member); err != nil {
			logger.Warnw("chat_read_marker_update_failed",
				"channel_id", filter.ChannelID, "user_id", userID, "error", err)
		}
	}
	return messages, total, nil
}

// MarkRead advances the caller's read marker to the newest message in
// the channel.
func (s *ChatService) MarkRead(userID, channelID uint) (*models.ChatMember, error) {
	_, member, err := s.requireMember(channelID, userID)
	if err != nil {
		return nil, err
	}

	latest, _, err := s.chatRepo.ListMessages(repository.ChatMessageListFilter{
		ChannelID: channelID,
		Page:      1,
		PageSize:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 || latest[0].ID <= member.LastReadID {
		return member, nil
	}

	member.LastReadID = latest[0].ID
	if err := s.chatRepo.UpdateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// PostMessage appends a message to a channel the caller belongs to.
func (s *ChatService) PostMessage(userID, channelID uint, input PostMessageInput) (*models.ChatMessage, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" || len(body) > maxChatMessageLength {
		return nil, ErrMessageInvalid
	}

	channel, member, err := s.requireMember(channelID, userID)
	if err != nil {
		return nil, err
	}
	if channel.IsArchived {
		return nil, ErrChannelArchived
	}

	message := &models.ChatMessage{
		ChannelID: channelID,
		SenderID:  userID,
		Body:      body,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	member.LastReadID = message.ID
	if err := s.chatRepo.UpdateMember(member); err != nil {
		logger.Warnw("chat_read_marker_update_failed",
			"channel_id", channelID, "user_id", userID, "error", err)
	}
	return message, nil
}

// CreateChannel creates a channel from the console.
func (s *ChatService) CreateChannel(ctx context.Context, input ChannelInput) (*models.ChatChannel, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if name == "" || slug == "" {
		return nil, ErrChannelInvalid
	}
	existing, err := s.chatRepo.GetChannelBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrChannelInvalid
	}

	channel := &models.ChatChannel{
		Name:       name,
		Slug:       slug,
		Topic:      strings.TrimSpace(input.Topic),
		Department: strings.TrimSpace(input.Department),
		IsPrivate:  input.IsPrivate,
	}
	if err := s.chatRepo.CreateChannel(channel); err != nil {
		return nil, err
	}
	s.invalidateChannelCache(ctx)

	logger.Infow("chat_channel_created", "channel_id", channel.ID, "slug", channel.Slug)
	return channel, nil
}

// UpdateChannel edits a channel from the console.
func (s *ChatService) UpdateChannel(ctx context.Context, channelID uint, input ChannelInput) (*models.ChatChannel, error) {
	channel, err := s.chatRepo.GetChannelByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		channel.Name = name
	}
	if slug := strings.ToLower(strings.TrimSpace(input.Slug)); slug != "" && slug != channel.Slug {
		existing, err := s.chatRepo.GetChannelBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrChannelInvalid
		}
		channel.Slug = slug
	}
	channel.Topic = strings.TrimSpace(input.Topic)
	channel.Department = strings.TrimSpace(input.Department)
	channel.IsPrivate = input.IsPrivate

	if err := s.chatRepo.UpdateChannel(channel); err != nil {
		return nil, err
	}
	s.invalidateChannelCache(ctx)
	return channel, nil
}

// ArchiveChannel closes a channel to new messages while keeping history.
func (s *ChatService) ArchiveChannel(ctx context.Context, channelID uint) (*models.ChatChannel, error) {
	channel, err := s.chatRepo.GetChannelByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	if channel.IsArchived {
		return channel, nil
	}

	channel.IsArchived = true
	if err := s.chatRepo.UpdateChannel(channel); err != nil {
		return nil, err
	}
	s.invalidateChannelCache(ctx)

	logger.Infow("chat_channel_archived", "channel_id", channel.ID)
	return channel, nil
}

// AddMember adds a staff member to any channel from the console.
func (s *ChatService) AddMember(channelID, userID uint, role string) (*models.ChatMember, error) {
	channel, err := s.chatRepo.GetChannelByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.chatRepo.GetMember(channelID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if role != constants.ChatMemberRoleModerator {
		role = constants.ChatMemberRoleMember
	}
	member := &models.ChatMember{
		ChannelID: channelID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := s.chatRepo.CreateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListAdminChannels lists every channel, archived included.
func (s *ChatService) ListAdminChannels() ([]models.ChatChannel, error) {
	return s.chatRepo.ListChannels(true)
}

func (s *ChatService) requireMember(channelID, userID uint) (*models.ChatChannel, *models.ChatMember, error) {
	channel, err := s.chatRepo.GetChannelByID(channelID)
	if err != nil {
		return nil, nil, err
	}
	if channel == nil {
		return nil, nil, ErrChannelNotFound
	}

	member, err := s.chatRepo.GetMember(channelID, userID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, ErrNotChannelMember
	}
	return channel, member, nil
}

func (s *ChatService) invalidateChannelCache(ctx context.Context) {
	if err := cache.Del(ctx, chatChannelListCacheKey); err != nil {
		logger.Warnw("chat_channel_cache_invalidate_failed", "error", err)
	}
}
