package repository

import (
	"errors"
	"strings"

	"github.com/e11even-central/api/internal/models"

	"gorm.io/gorm"
)

// CourseRepository is the course/lesson data access interface.
type CourseRepository interface {
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uint) error
	GetByID(id uint) (*models.Course, error)
	GetBySlug(slug string, withLessons bool) (*models.Course, error)
	List(filter CourseListFilter) ([]models.Course, int64, error)
	CreateLesson(lesson *models.Lesson) error
	UpdateLesson(lesson *models.Lesson) error
	DeleteLesson(id uint) error
	GetLessonByID(id uint) (*models.Lesson, error)
	ListLessons(courseID uint) ([]models.Lesson, error)
	CountLessons(courseID uint) (int64, error)
}

// GormCourseRepository is the GORM implementation.
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a course repository.
func NewCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// Create inserts a course.
func (r *GormCourseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

// Update saves a course.
func (r *GormCourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete soft-deletes a course.
func (r *GormCourseRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Course{}, id).Error
}

// GetByID returns a course, or nil when missing.
func (r *GormCourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetBySlug returns a course by slug, optionally preloading lessons.
func (r *GormCourseRepository) GetBySlug(slug string, withLessons bool) (*models.Course, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	query := r.db.Where("slug = ?", slug)
	if withLessons {
		query = query.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		})
	}
	var course models.Course
	result := query.Limit(1).Find(&course)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &course, nil
}

// List returns courses matching the filter plus the total count.
func (r *GormCourseRepository) List(filter CourseListFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var courses []models.Course
	if err := query.Order("position asc, id asc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// CreateLesson inserts a lesson.
func (r *GormCourseRepository) CreateLesson(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

// UpdateLesson saves a lesson.
func (r *GormCourseRepository) UpdateLesson(lesson *models.Lesson) error {
	return r.db.Save(lesson).Error
}

// DeleteLesson soft-deletes a lesson.
func (r *GormCourseRepository) DeleteLesson(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Lesson{}, id).Error
}

// GetLessonByID returns a lesson, or nil when missing.
func (r *GormCourseRepository) GetLessonByID(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

// ListLessons returns a course's lessons in display order.
func (r *GormCourseRepository) ListLessons(courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Where("course_id = ?", courseID).
		Order("position asc, id asc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// CountLessons counts a course's lessons.
func (r *GormCourseRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
