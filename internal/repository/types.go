package repository

import "time"

// TipListFilter filters the tip list query.
type TipListFilter struct {
	Page          int
	PageSize      int
	TipperID      uint
	ProviderID    uint
	PaymentStatus string
	PaymentMethod string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PaymentSessionListFilter filters the payment session list query.
type PaymentSessionListFilter struct {
	Page        int
	PageSize    int
	TipID       uint
	TipperID    uint
	ProviderID  uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filters the staff list query.
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Department  string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserLoginLogListFilter filters the login log list query.
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CourseListFilter filters the course list query.
type CourseListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Search        string
	OnlyPublished bool
}

// ChatMessageListFilter filters the channel message list query.
type ChatMessageListFilter struct {
	Page      int
	PageSize  int
	ChannelID uint
	BeforeID  uint
}

// ShiftListFilter filters the shift list query.
type ShiftListFilter struct {
	Page          int
	PageSize      int
	Department    string
	From          *time.Time
	To            *time.Time
	OnlyPublished bool
}
