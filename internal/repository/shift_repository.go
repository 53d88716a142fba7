package repository

import (
	"errors"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// ShiftRepository is the scheduling data access interface.
type ShiftRepository interface {
	Create(shift *models.Shift) error
	Update(shift *models.Shift) error
	Delete(id uint) error
	GetByID(id uint) (*models.Shift, error)
	List(filter ShiftListFilter) ([]models.Shift, int64, error)
	CreateAssignment(assignment *models.ShiftAssignment) error
	UpdateAssignment(assignment *models.ShiftAssignment) error
	DeleteAssignment(shiftID, userID uint) error
	GetAssignmentByID(id uint) (*models.ShiftAssignment, error)
	GetAssignment(shiftID, userID uint) (*models.ShiftAssignment, error)
	ListAssignmentsByShift(shiftID uint) ([]models.ShiftAssignment, error)
	ListAssignmentsByUser(userID uint) ([]models.ShiftAssignment, error)
	CountActiveAssignments(shiftID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormShiftRepository
}

// GormShiftRepository is the GORM implementation.
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a shift repository.
func NewShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormShiftRepository) WithTx(tx *gorm.DB) *GormShiftRepository {
	if tx == nil {
		return r
	}
	return &GormShiftRepository{db: tx}
}

// Create inserts a shift.
func (r *GormShiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

// Update saves a shift.
func (r *GormShiftRepository) Update(shift *models.Shift) error {
	return r.db.Save(shift).Error
}

// Delete soft-deletes a shift.
func (r *GormShiftRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Shift{}, id).Error
}

// GetByID returns a shift, or nil when missing.
func (r *GormShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// List returns shifts matching the filter plus the total count.
func (r *GormShiftRepository) List(filter ShiftListFilter) ([]models.Shift, int64, error) {
	query := r.db.Model(&models.Shift{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var shifts []models.Shift
	if err := query.Order("starts_at asc, id asc").Find(&shifts).Error; err != nil {
		return nil, 0, err
	}
	return shifts, total, nil
}

// CreateAssignment inserts an assignment.
func (r *GormShiftRepository) CreateAssignment(assignment *models.ShiftAssignment) error {
	return r.db.Create(assignment).Error
}

// UpdateAssignment saves an assignment.
func (r *GormShiftRepository) UpdateAssignment(assignment *models.ShiftAssignment) error {
	return r.db.Save(assignment).Error
}

// DeleteAssignment removes a staff member from a shift.
func (r *GormShiftRepository) DeleteAssignment(shiftID, userID uint) error {
	return r.db.Where("shift_id = ? AND user_id = ?", shiftID, userID).
		Delete(&models.ShiftAssignment{}).Error
}

// GetAssignmentByID returns an assignment, or nil when missing.
func (r *GormShiftRepository) GetAssignmentByID(id uint) (*models.ShiftAssignment, error) {
	var assignment models.ShiftAssignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// GetAssignment returns a user's assignment on a shift.
func (r *GormShiftRepository) GetAssignment(shiftID, userID uint) (*models.ShiftAssignment, error) {
	var assignment models.ShiftAssignment
	result := r.db.Where("shift_id = ? AND user_id = ?", shiftID, userID).Limit(1).Find(&assignment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &assignment, nil
}

// ListAssignmentsByShift returns a shift's assignments.
func (r *GormShiftRepository) ListAssignmentsByShift(shiftID uint) ([]models.ShiftAssignment, error) {
	var assignments []models.ShiftAssignment
	err := r.db.Where("shift_id = ?", shiftID).
		Order("id asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignmentsByUser returns a user's assignments, soonest shift first.
func (r *GormShiftRepository) ListAssignmentsByUser(userID uint) ([]models.ShiftAssignment, error) {
	var assignments []models.ShiftAssignment
	err := r.db.Model(&models.ShiftAssignment{}).
		Joins("JOIN shifts ON shifts.id = shift_assignments.shift_id").
		Where("shift_assignments.user_id = ?", userID).
		Order("shifts.starts_at asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CountActiveAssignments counts assignments holding a slot on the shift.
// Declined assignments do not count against capacity.
func (r *GormShiftRepository) CountActiveAssignments(shiftID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ShiftAssignment{}).
		Where("shift_id = ? AND status <> ?", shiftID, constants.AssignmentStatusDeclined).
		Count(&count).Error
	return count, err
}
