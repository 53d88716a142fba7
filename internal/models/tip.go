package models

import (
	"time"

	"gorm.io/gorm"
)

// Tip is a gratuity from one staff member (tipper) to another (provider).
type Tip struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProviderID    uint           `gorm:"index;not null" json:"provider_id"` // staff member receiving the tip
	TipperID      uint           `gorm:"index;not null" json:"tipper_id"`   // staff member giving the tip
	Amount        Money          `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string         `gorm:"not null" json:"payment_method"`                  // cash / credit_card / venue_account
	PaymentStatus string         `gorm:"index;default:'pending'" json:"payment_status"`   // pending / completed / failed / refunded
	AppointmentID *uint          `gorm:"index" json:"appointment_id,omitempty"`           // optional service/booking reference
	Message       string         `gorm:"default:''" json:"message"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Tip) TableName() string {
	return "tips"
}
