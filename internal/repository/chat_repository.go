package repository

import (
	"errors"

	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// ChatRepository is the chat data access interface.
type ChatRepository interface {
	CreateChannel(channel *models.ChatChannel) error
	UpdateChannel(channel *models.ChatChannel) error
	GetChannelByID(id uint) (*models.ChatChannel, error)
	GetChannelBySlug(slug string) (*models.ChatChannel, error)
	ListChannels(includeArchived bool) ([]models.ChatChannel, error)
	ListChannelsForUser(userID uint) ([]models.ChatChannel, error)
	CreateMember(member *models.ChatMember) error
	UpdateMember(member *models.ChatMember) error
	GetMember(channelID, userID uint) (*models.ChatMember, error)
	CountMembers(channelID uint) (int64, error)
	CreateMessage(message *models.ChatMessage) error
	ListMessages(filter ChatMessageListFilter) ([]models.ChatMessage, int64, error)
}

// GormChatRepository is the GORM implementation.
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a chat repository.
func NewChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// CreateChannel inserts a channel.
func (r *GormChatRepository) CreateChannel(channel *models.ChatChannel) error {
	return r.db.Create(channel).Error
}

// UpdateChannel saves a channel.
func (r *GormChatRepository) UpdateChannel(channel *models.ChatChannel) error {
	return r.db.Save(channel).Error
}

// GetChannelByID returns a channel, or nil when missing.
func (r *GormChatRepository) GetChannelByID(id uint) (*models.ChatChannel, error) {
	var channel models.ChatChannel
	if err := r.db.First(&channel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// GetChannelBySlug returns a channel by slug, or nil when missing.
func (r *GormChatRepository) GetChannelBySlug(slug string) (*models.ChatChannel, error) {
	var channel models.ChatChannel
	result := r.db.Where("slug = ?", slug).Limit(1).Find(&channel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &channel, nil
}

// ListChannels returns channels, optionally including archived ones.
func (r *GormChatRepository) ListChannels(includeArchived bool) ([]models.ChatChannel, error) {
	query := r.db.Model(&models.ChatChannel{})
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	var channels []models.ChatChannel
	if err := query.Order("id asc").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// ListChannelsForUser returns unarchived channels the user belongs to,
// plus every public channel.
func (r *GormChatRepository) ListChannelsForUser(userID uint) ([]models.ChatChannel, error) {
	var channels []models.ChatChannel
	err := r.db.Model(&models.ChatChannel{}).
		Joins("LEFT JOIN chat_members ON chat_members.channel_id = chat_channels.id AND chat_members.user_id = ?", userID).
		Where("chat_channels.is_archived = ?", false).
		Where("chat_channels.is_private = ? OR chat_members.id IS NOT NULL", false).
		Order("chat_channels.id asc").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// CreateMember inserts a membership row.
func (r *GormChatRepository) CreateMember(member *models.ChatMember) error {
	return r.db.Create(member).Error
}

// UpdateMember saves a membership row.
func (r *GormChatRepository) UpdateMember(member *models.ChatMember) error {
	return r.db.Save(member).Error
}

// GetMember returns a user's membership in a channel.
func (r *GormChatRepository) GetMember(channelID, userID uint) (*models.ChatMember, error) {
	var member models.ChatMember
	result := r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).Limit(1).Find(&member)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &member, nil
}

// CountMembers counts a channel's members.
func (r *GormChatRepository) CountMembers(channelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMember{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

// CreateMessage inserts a message.
func (r *GormChatRepository) CreateMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// ListMessages returns channel messages newest-first.
func (r *GormChatRepository) ListMessages(filter ChatMessageListFilter) ([]models.ChatMessage, int64, error) {
	query := r.db.Model(&models.ChatMessage{}).Where("channel_id = ?", filter.ChannelID)

	if filter.BeforeID != 0 {
		query = query.Where("id < ?", filter.BeforeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var messages []models.ChatMessage
	if err := query.Order("id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
