package models

import "time"

// UserLoginLog records one login attempt.
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"` // 0 when the account was not resolved
	Email      string    `gorm:"index" json:"email"`
	Status     string    `gorm:"index" json:"status"` // success / failed
	FailReason string    `gorm:"default:''" json:"fail_reason"`
	IP         string    `gorm:"default:''" json:"ip"`
	UserAgent  string    `gorm:"default:''" json:"user_agent"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
