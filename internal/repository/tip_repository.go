package repository

import (
	"errors"

	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// TipRepository is the tip data access interface.
type TipRepository interface {
	Create(tip *models.Tip) error
	Update(tip *models.Tip) error
	Delete(id uint) error
	GetByID(id uint) (*models.Tip, error)
	List(filter TipListFilter) ([]models.Tip, int64, error)
	WithTx(tx *gorm.DB) *GormTipRepository
}

// GormTipRepository is the GORM implementation.
type GormTipRepository struct {
	db *gorm.DB
}

// NewTipRepository creates a tip repository.
func NewTipRepository(db *gorm.DB) *GormTipRepository {
	return &GormTipRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormTipRepository) WithTx(tx *gorm.DB) *GormTipRepository {
	if tx == nil {
		return r
	}
	return &GormTipRepository{db: tx}
}

// Create inserts a tip.
func (r *GormTipRepository) Create(tip *models.Tip) error {
	return r.db.Create(tip).Error
}

// Update saves a tip.
func (r *GormTipRepository) Update(tip *models.Tip) error {
	return r.db.Save(tip).Error
}

// Delete soft-deletes a tip.
func (r *GormTipRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Tip{}, id).Error
}

// GetByID returns a tip, or nil when missing.
func (r *GormTipRepository) GetByID(id uint) (*models.Tip, error) {
	var tip models.Tip
	if err := r.db.First(&tip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tip, nil
}

// List returns tips matching the filter plus the total count.
func (r *GormTipRepository) List(filter TipListFilter) ([]models.Tip, int64, error) {
	query := r.db.Model(&models.Tip{})

	if filter.TipperID != 0 {
		query = query.Where("tipper_id = ?", filter.TipperID)
	}
	if filter.ProviderID != 0 {
		query = query.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
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

	var tips []models.Tip
	if err := query.Order("id DESC").Find(&tips).Error; err != nil {
		return nil, 0, err
	}
	return tips, total, nil
}
