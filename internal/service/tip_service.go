package service

import (
	"strings"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/shopspring/decimal"
)

// TipService manages gratuity records.
type TipService struct {
	tipRepo       *repository.GormTipRepository
	userRepo      repository.UserRepository
	dashboardRepo repository.DashboardRepository
}

// NewTipService creates the tip service.
func NewTipService(
	tipRepo *repository.GormTipRepository,
	userRepo repository.UserRepository,
	dashboardRepo repository.DashboardRepository,
) *TipService {
	return &TipService{
		tipRepo:       tipRepo,
		userRepo:      userRepo,
		dashboardRepo: dashboardRepo,
	}
}

// CreateTipInput is the create request.
type CreateTipInput struct {
	ProviderID    uint
	Amount        decimal.Decimal
	PaymentMethod string
	AppointmentID *uint
	Message       string
}

// UpdateTipInput is the update request; nil fields are left unchanged.
type UpdateTipInput struct {
	Amount        *decimal.Decimal
	PaymentMethod *string
	Message       *string
}

// TipStats is the caller-as-provider gratuity aggregate.
type TipStats struct {
	ReceivedCount  int64        `json:"received_count"`
	ReceivedVolume models.Money `json:"received_volume"`
	PendingCount   int64        `json:"pending_count"`
	TodayCount     int64        `json:"today_count"`
	TodayVolume    models.Money `json:"today_volume"`
}

func validTipMethod(method string) bool {
	switch method {
	case constants.TipMethodCash, constants.TipMethodCreditCard, constants.TipMethodVenueAccount:
		return true
	}
	return false
}

// Create records a new pending tip from the caller to a provider.
func (s *TipService) Create(tipperID uint, input CreateTipInput) (*models.Tip, error) {
	if input.ProviderID == 0 || input.ProviderID == tipperID {
		return nil, ErrTipInvalid
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrTipInvalid
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if !validTipMethod(method) {
		return nil, ErrTipInvalid
	}

	provider, err := s.userRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.Status != constants.UserStatusActive {
		return nil, ErrTipInvalid
	}

	tip := &models.Tip{
		ProviderID:    input.ProviderID,
		TipperID:      tipperID,
		Amount:        models.NewMoneyFromDecimal(input.Amount),
		PaymentMethod: method,
		PaymentStatus: constants.TipStatusPending,
		AppointmentID: input.AppointmentID,
		Message:       strings.TrimSpace(input.Message),
	}
	if err := s.tipRepo.Create(tip); err != nil {
		return nil, err
	}

	logger.Infow("tip_created",
		"tip_id", tip.ID,
		"tipper_id", tipperID,
		"provider_id", tip.ProviderID,
		"amount", tip.Amount.String(),
	)
	return tip, nil
}

// Get returns a tip visible to the caller (tipper or provider only).
func (s *TipService) Get(userID, tipID uint) (*models.Tip, error) {
	tip, err := s.tipRepo.GetByID(tipID)
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	if tip.TipperID != userID && tip.ProviderID != userID {
		return nil, ErrTipForbidden
	}
	return tip, nil
}

// Update edits a tip. Only the tipper may edit, and only while pending.
func (s *TipService) Update(userID, tipID uint, input UpdateTipInput) (*models.Tip, error) {
	tip, err := s.tipRepo.GetByID(tipID)
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	if tip.TipperID != userID {
		return nil, ErrTipForbidden
	}
	if tip.PaymentStatus != constants.TipStatusPending {
		return nil, ErrTipNotPending
	}

	if input.Amount != nil {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrTipInvalid
		}
		tip.Amount = models.NewMoneyFromDecimal(*input.Amount)
	}
	if input.PaymentMethod != nil {
		method := strings.ToLower(strings.TrimSpace(*input.PaymentMethod))
		if !validTipMethod(method) {
			return nil, ErrTipInvalid
		}
		tip.PaymentMethod = method
	}
	if input.Message != nil {
		tip.Message = strings.TrimSpace(*input.Message)
	}

	if err := s.tipRepo.Update(tip); err != nil {
		return nil, err
	}
	logger.Infow("tip_updated", "tip_id", tip.ID, "tipper_id", userID)
	return tip, nil
}

// Delete soft-deletes a tip. Only the tipper may delete, only while pending.
func (s *TipService) Delete(userID, tipID uint) error {
	tip, err := s.tipRepo.GetByID(tipID)
	if err != nil {
		return err
	}
	if tip == nil {
		return ErrTipNotFound
	}
	if tip.TipperID != userID {
		return ErrTipForbidden
	}
	if tip.PaymentStatus != constants.TipStatusPending {
		return ErrTipNotPending
	}

	if err := s.tipRepo.Delete(tip.ID); err != nil {
		return err
	}
	logger.Infow("tip_deleted", "tip_id", tip.ID, "tipper_id", userID)
	return nil
}

// ListMine lists the caller's tips, as tipper or as provider.
func (s *TipService) ListMine(userID uint, role string, filter repository.TipListFilter) ([]models.Tip, int64, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "provider":
		filter.ProviderID = userID
		filter.TipperID = 0
	default:
		filter.TipperID = userID
		filter.ProviderID = 0
	}
	return s.tipRepo.List(filter)
}

// ListAdmin lists tips for the console.
func (s *TipService) ListAdmin(filter repository.TipListFilter) ([]models.Tip, int64, error) {
	return s.tipRepo.List(filter)
}

// Stats returns the caller's received-tip totals.
func (s *TipService) Stats(providerID uint) (*TipStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	row, err := s.dashboardRepo.GetProviderTipStats(providerID, todayStart)
	if err != nil {
		return nil, err
	}
	return &TipStats{
		ReceivedCount:  row.ReceivedCount,
		ReceivedVolume: models.NewMoneyFromDecimal(row.ReceivedVolume),
		PendingCount:   row.PendingCount,
		TodayCount:     row.TodayCount,
		TodayVolume:    models.NewMoneyFromDecimal(row.TodayVolume),
	}, nil
}
