package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatChannel is a team chat room.
type ChatChannel struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	Topic      string         `gorm:"default:''" json:"topic"`
	Department string         `gorm:"index;default:''" json:"department"`
	IsPrivate  bool           `gorm:"default:false" json:"is_private"` // private channels are join-by-admin only
	IsArchived bool           `gorm:"index;default:false" json:"is_archived"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ChatChannel) TableName() string {
	return "chat_channels"
}

// ChatMember links a staff member to a channel.
type ChatMember struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ChannelID  uint      `gorm:"uniqueIndex:uniq_chat_member;not null" json:"channel_id"`
	UserID     uint      `gorm:"uniqueIndex:uniq_chat_member;index;not null" json:"user_id"`
	Role       string    `gorm:"default:'member'" json:"role"` // member / moderator
	LastReadID uint      `gorm:"default:0" json:"last_read_id"`
	JoinedAt   time.Time `json:"joined_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (ChatMember) TableName() string {
	return "chat_members"
}

// ChatMessage is a single message in a channel.
type ChatMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ChannelID uint      `gorm:"index;not null" json:"channel_id"`
	SenderID  uint      `gorm:"index;not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (ChatMessage) TableName() string {
	return "chat_messages"
}
