package repository

import (
	"errors"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// EnrollmentRepository is the enrollment/progress data access interface.
type EnrollmentRepository interface {
	Create(enrollment *models.Enrollment) error
	Update(enrollment *models.Enrollment) error
	GetByID(id uint) (*models.Enrollment, error)
	GetByUserCourse(userID, courseID uint) (*models.Enrollment, error)
	ListByUser(userID uint) ([]models.Enrollment, error)
	CreateLessonProgress(progress *models.LessonProgress) error
	GetLessonProgress(userID, lessonID uint) (*models.LessonProgress, error)
	CountLessonProgress(userID, courseID uint) (int64, error)
	CompletionStats() (total int64, completed int64, err error)
	WithTx(tx *gorm.DB) *GormEnrollmentRepository
}

// GormEnrollmentRepository is the GORM implementation.
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormEnrollmentRepository) WithTx(tx *gorm.DB) *GormEnrollmentRepository {
	if tx == nil {
		return r
	}
	return &GormEnrollmentRepository{db: tx}
}

// Create inserts an enrollment.
func (r *GormEnrollmentRepository) Create(enrollment *models.Enrollment) error {
	return r.db.Create(enrollment).Error
}

// Update saves an enrollment.
func (r *GormEnrollmentRepository) Update(enrollment *models.Enrollment) error {
	return r.db.Save(enrollment).Error
}

// GetByID returns an enrollment, or nil when missing.
func (r *GormEnrollmentRepository) GetByID(id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

// GetByUserCourse returns a user's enrollment in a course.
func (r *GormEnrollmentRepository) GetByUserCourse(userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	result := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).Limit(1).Find(&enrollment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &enrollment, nil
}

// ListByUser returns a user's enrollments, newest first.
func (r *GormEnrollmentRepository) ListByUser(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("user_id = ?", userID).
		Order("id desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// CreateLessonProgress inserts a lesson completion row.
func (r *GormEnrollmentRepository) CreateLessonProgress(progress *models.LessonProgress) error {
	return r.db.Create(progress).Error
}

// GetLessonProgress returns a user's completion row for a lesson.
func (r *GormEnrollmentRepository) GetLessonProgress(userID, lessonID uint) (*models.LessonProgress, error) {
	var progress models.LessonProgress
	result := r.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Limit(1).Find(&progress)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &progress, nil
}

// CountLessonProgress counts a user's completed lessons in a course.
func (r *GormEnrollmentRepository) CountLessonProgress(userID, courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}

// CompletionStats returns total and completed enrollment counts.
func (r *GormEnrollmentRepository) CompletionStats() (int64, int64, error) {
	var total int64
	if err := r.db.Model(&models.Enrollment{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var completed int64
	err := r.db.Model(&models.Enrollment{}).
		Where("status = ?", constants.EnrollmentStatusCompleted).
		Count(&completed).Error
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}
