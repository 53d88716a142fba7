package service

import (
	"strings"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseService manages training courses and enrollments.
type CourseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo *repository.GormEnrollmentRepository
}

// NewCourseService creates the course service.
func NewCourseService(
	courseRepo repository.CourseRepository,
	enrollmentRepo *repository.GormEnrollmentRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// CourseInput is the admin create/update request.
type CourseInput struct {
	Title       string
	Slug        string
	Summary     string
	Body        string
	Category    string
	IsPublished bool
	Position    int
}

// LessonInput is the admin lesson create/update request.
type LessonInput struct {
	Title           string
	Body            string
	Position        int
	DurationMinutes int
}

// ListPublished lists published courses for staff.
func (s *CourseService) ListPublished(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	filter.OnlyPublished = true
	return s.courseRepo.List(filter)
}

// ListAdmin lists all courses for the console.
func (s *CourseService) ListAdmin(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	return s.courseRepo.List(filter)
}

// GetBySlug returns a published course with its lessons.
func (s *CourseService) GetBySlug(slug string) (*models.Course, error) {
	course, err := s.courseRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if !course.IsPublished {
		return nil, ErrCourseUnpublished
	}
	return course, nil
}

// Enroll joins the caller to a published course.
func (s *CourseService) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if !course.IsPublished {
		return nil, ErrCourseUnpublished
	}

	existing, err := s.enrollmentRepo.GetByUserCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   constants.EnrollmentStatusEnrolled,
	}
	if err := s.enrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	logger.Infow("course_enrolled", "user_id", userID, "course_id", courseID)
	return enrollment, nil
}

// ListEnrollments lists the caller's enrollments.
func (s *CourseService) ListEnrollments(userID uint) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(userID)
}

// CompleteLesson marks a lesson done and recomputes course progress.
// Completing the same lesson twice is a no-op. At 100% the enrollment
// flips to completed.
func (s *CourseService) CompleteLesson(userID, lessonID uint) (*models.Enrollment, error) {
	lesson, err := s.courseRepo.GetLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	var enrollment *models.Enrollment
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.Enrollment
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", userID, lesson.CourseID).
			Limit(1).
			Find(&locked)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotEnrolled
		}

		enrollmentRepo := s.enrollmentRepo.WithTx(tx)

		existing, err := enrollmentRepo.GetLessonProgress(userID, lessonID)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := enrollmentRepo.CreateLessonProgress(&models.LessonProgress{
				UserID:      userID,
				LessonID:    lessonID,
				CourseID:    lesson.CourseID,
				CompletedAt: time.Now(),
			}); err != nil {
				return err
			}
		}

		completedCount, err := enrollmentRepo.CountLessonProgress(userID, lesson.CourseID)
		if err != nil {
			return err
		}
		var lessonTotal int64
		if err := tx.Model(&models.Lesson{}).
			Where("course_id = ?", lesson.CourseID).
			Count(&lessonTotal).Error; err != nil {
			return err
		}

		locked.CompletedLessons = int(completedCount)
		if lessonTotal > 0 {
			locked.ProgressPercent = int(completedCount * 100 / lessonTotal)
		}
		if lessonTotal > 0 && completedCount >= lessonTotal {
			locked.ProgressPercent = 100
			if locked.Status != constants.EnrollmentStatusCompleted {
				locked.Status = constants.EnrollmentStatusCompleted
				now := time.Now()
				locked.CompletedAt = &now
			}
		}

		if err := enrollmentRepo.Update(&locked); err != nil {
			return err
		}
		enrollment = &locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("lesson_completed",
		"user_id", userID,
		"lesson_id", lessonID,
		"course_id", lesson.CourseID,
		"progress", enrollment.ProgressPercent,
	)
	return enrollment, nil
}

// CreateCourse creates a course from the console.
func (s *CourseService) CreateCourse(input CourseInput) (*models.Course, error) {
	title := strings.TrimSpace(input.Title)
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if title == "" || slug == "" {
		return nil, ErrCourseInvalid
	}
	existing, err := s.courseRepo.GetBySlug(slug, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCourseInvalid
	}

	course := &models.Course{
		Title:       title,
		Slug:        slug,
		Summary:     strings.TrimSpace(input.Summary),
		Body:        input.Body,
		Category:    strings.TrimSpace(input.Category),
		IsPublished: input.IsPublished,
		Position:    input.Position,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse edits a course from the console.
func (s *CourseService) UpdateCourse(courseID uint, input CourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title != "" {
		course.Title = title
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug != "" && slug != course.Slug {
		existing, err := s.courseRepo.GetBySlug(slug, false)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCourseInvalid
		}
		course.Slug = slug
	}
	course.Summary = strings.TrimSpace(input.Summary)
	course.Body = input.Body
	course.Category = strings.TrimSpace(input.Category)
	course.IsPublished = input.IsPublished
	course.Position = input.Position

	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse soft-deletes a course.
func (s *CourseService) DeleteCourse(courseID uint) error {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	return s.courseRepo.Delete(courseID)
}

// CreateLesson adds a lesson to a course.
func (s *CourseService) CreateLesson(courseID uint, input LessonInput) (*models.Lesson, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrCourseInvalid
	}

	lesson := &models.Lesson{
		CourseID:        courseID,
		Title:           title,
		Body:            input.Body,
		Position:        input.Position,
		DurationMinutes: input.DurationMinutes,
	}
	if err := s.courseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson edits a lesson.
func (s *CourseService) UpdateLesson(lessonID uint, input LessonInput) (*models.Lesson, error) {
	lesson, err := s.courseRepo.GetLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title != "" {
		lesson.Title = title
	}
	lesson.Body = input.Body
	lesson.Position = input.Position
	lesson.DurationMinutes = input.DurationMinutes

	if err := s.courseRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson.
func (s *CourseService) DeleteLesson(lessonID uint) error {
	lesson, err := s.courseRepo.GetLessonByID(lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrLessonNotFound
	}
	if err := s.courseRepo.DeleteLesson(lessonID); err != nil {
		return err
	}
	// Progress rows for the removed lesson stay in place; enrollment
	// percentages are recomputed on the next completion.
	return nil
}
