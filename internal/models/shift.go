package models

import (
	"time"

	"gorm.io/gorm"
)

// Shift is one scheduled work slot.
type Shift struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Department  string         `gorm:"index;default:''" json:"department"`
	RoleTitle   string         `gorm:"default:''" json:"role_title"`
	StartsAt    time.Time      `gorm:"index;not null" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Capacity    int            `gorm:"default:1" json:"capacity"` // max confirmed+assigned staff
	Notes       string         `gorm:"default:''" json:"notes"`
	IsPublished bool           `gorm:"index;default:false" json:"is_published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Shift) TableName() string {
	return "shifts"
}

// ShiftAssignment puts a staff member on a shift.
type ShiftAssignment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	ShiftID     uint       `gorm:"uniqueIndex:uniq_shift_assignment;not null" json:"shift_id"`
	UserID      uint       `gorm:"uniqueIndex:uniq_shift_assignment;index;not null" json:"user_id"`
	Status      string     `gorm:"index;default:'assigned'" json:"status"` // assigned / confirmed / declined
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}
