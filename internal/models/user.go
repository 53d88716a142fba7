package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff member account.
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	DisplayName        string         `gorm:"default:''" json:"display_name"`
	Role               string         `gorm:"default:'staff';index" json:"role"` // staff title
	Department         string         `gorm:"default:'';index" json:"department"`
	Status             string         `gorm:"default:'active'" json:"status"`     // active / disabled
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`        // bump to invalidate all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                     // tokens issued before this are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
