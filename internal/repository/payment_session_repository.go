package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// PaymentSessionRepository is the payment session data access interface.
type PaymentSessionRepository interface {
	Create(session *models.PaymentSession) error
	Update(session *models.PaymentSession) error
	GetByID(id uint) (*models.PaymentSession, error)
	GetByReference(reference string) (*models.PaymentSession, error)
	GetActiveByTipID(tipID uint, now time.Time) (*models.PaymentSession, error)
	ListExpiredAwaiting(now time.Time, limit int) ([]models.PaymentSession, error)
	List(filter PaymentSessionListFilter) ([]models.PaymentSession, int64, error)
	WithTx(tx *gorm.DB) *GormPaymentSessionRepository
}

// GormPaymentSessionRepository is the GORM implementation.
type GormPaymentSessionRepository struct {
	db *gorm.DB
}

// NewPaymentSessionRepository creates a payment session repository.
func NewPaymentSessionRepository(db *gorm.DB) *GormPaymentSessionRepository {
	return &GormPaymentSessionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentSessionRepository) WithTx(tx *gorm.DB) *GormPaymentSessionRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentSessionRepository{db: tx}
}

// Create inserts a session.
func (r *GormPaymentSessionRepository) Create(session *models.PaymentSession) error {
	return r.db.Create(session).Error
}

// Update saves a session.
func (r *GormPaymentSessionRepository) Update(session *models.PaymentSession) error {
	return r.db.Save(session).Error
}

// GetByID returns a session, or nil when missing.
func (r *GormPaymentSessionRepository) GetByID(id uint) (*models.PaymentSession, error) {
	var session models.PaymentSession
	if err := r.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetByReference returns a session by its public reference.
func (r *GormPaymentSessionRepository) GetByReference(reference string) (*models.PaymentSession, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var session models.PaymentSession
	result := r.db.Where("reference = ?", reference).Limit(1).Find(&session)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &session, nil
}

// GetActiveByTipID returns the latest unexpired awaiting session for a tip.
func (r *GormPaymentSessionRepository) GetActiveByTipID(tipID uint, now time.Time) (*models.PaymentSession, error) {
	var session models.PaymentSession
	result := r.db.Where("tip_id = ? AND status = ? AND expires_at > ?",
		tipID,
		constants.SessionStatusAwaitingPayment,
		now,
	).Order("id desc").Limit(1).Find(&session)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &session, nil
}

// ListExpiredAwaiting returns sessions past their window and still awaiting payment.
func (r *GormPaymentSessionRepository) ListExpiredAwaiting(now time.Time, limit int) ([]models.PaymentSession, error) {
	if limit <= 0 {
		limit = 100
	}
	var sessions []models.PaymentSession
	err := r.db.Where("status = ? AND expires_at <= ?", constants.SessionStatusAwaitingPayment, now).
		Order("id asc").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// List returns sessions matching the filter plus the total count.
func (r *GormPaymentSessionRepository) List(filter PaymentSessionListFilter) ([]models.PaymentSession, int64, error) {
	query := r.db.Model(&models.PaymentSession{})

	if filter.TipID != 0 {
		query = query.Where("tip_id = ?", filter.TipID)
	}
	if filter.TipperID != 0 {
		query = query.Where("tipper_id = ?", filter.TipperID)
	}
	if filter.ProviderID != 0 {
		query = query.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var sessions []models.PaymentSession
	if err := query.Order("id DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
