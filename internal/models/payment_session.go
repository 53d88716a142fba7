package models

import "time"

// PaymentSession tracks one payment attempt for a pending tip.
//
// Status moves exactly once from awaiting_payment to one of
// payment_received / payment_failed / cancelled.
type PaymentSession struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Reference     string     `gorm:"uniqueIndex;not null" json:"reference"` // opaque uuid used in URLs
	TipID         uint       `gorm:"index;not null" json:"tip_id"`
	TipperID      uint       `gorm:"index;not null" json:"tipper_id"`
	ProviderID    uint       `gorm:"index;not null" json:"provider_id"`
	Amount        Money      `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status        string     `gorm:"index;default:'awaiting_payment'" json:"status"`
	PaymentURL    string     `gorm:"default:''" json:"payment_url"`
	ReturnURL     string     `gorm:"default:''" json:"return_url"`
	TransactionID string     `gorm:"default:''" json:"transaction_id,omitempty"`
	ExpiresAt     time.Time  `gorm:"index;not null" json:"expires_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (PaymentSession) TableName() string {
	return "payment_sessions"
}

// Expired reports whether the session's payment window has passed.
func (s *PaymentSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Terminal reports whether the session has already reached a final status.
func (s *PaymentSession) Terminal() bool {
	return s.Status != "awaiting_payment"
}
