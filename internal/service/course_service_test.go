package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCourseServiceTest(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:course_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	return NewCourseService(courseRepo, enrollmentRepo), db
}

func createTestCourse(t *testing.T, svc *CourseService, slug string, lessons int) (*models.Course, []models.Lesson) {
	t.Helper()
	course, err := svc.CreateCourse(CourseInput{
		Title:       "Service Standards " + slug,
		Slug:        slug,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	created := make([]models.Lesson, 0, lessons)
	for i := 0; i < lessons; i++ {
		lesson, err := svc.CreateLesson(course.ID, LessonInput{
			Title:    fmt.Sprintf("Lesson %d", i+1),
			Position: i + 1,
		})
		if err != nil {
			t.Fatalf("create lesson failed: %v", err)
		}
		created = append(created, *lesson)
	}
	return course, created
}

func TestEnrollAndCompleteCourse(t *testing.T) {
	svc, _ := setupCourseServiceTest(t)
	course, lessons := createTestCourse(t, svc, "steps-of-service", 2)

	enrollment, err := svc.Enroll(1, course.ID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if enrollment.Status != constants.EnrollmentStatusEnrolled {
		t.Fatalf("enrollment status want enrolled got %s", enrollment.Status)
	}
	if enrollment.ProgressPercent != 0 {
		t.Fatalf("progress want 0 got %d", enrollment.ProgressPercent)
	}

	half, err := svc.CompleteLesson(1, lessons[0].ID)
	if err != nil {
		t.Fatalf("complete first lesson failed: %v", err)
	}
	if half.ProgressPercent != 50 {
		t.Fatalf("progress want 50 got %d", half.ProgressPercent)
	}
	if half.Status != constants.EnrollmentStatusEnrolled {
		t.Fatalf("enrollment status want enrolled got %s", half.Status)
	}

	full, err := svc.CompleteLesson(1, lessons[1].ID)
	if err != nil {
		t.Fatalf("complete second lesson failed: %v", err)
	}
	if full.ProgressPercent != 100 {
		t.Fatalf("progress want 100 got %d", full.ProgressPercent)
	}
	if full.Status != constants.EnrollmentStatusCompleted {
		t.Fatalf("enrollment status want completed got %s", full.Status)
	}
	if full.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestCompleteLessonTwiceIsNoOp(t *testing.T) {
	svc, db := setupCourseServiceTest(t)
	course, lessons := createTestCourse(t, svc, "wine-basics", 2)

	if _, err := svc.Enroll(1, course.ID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if _, err := svc.CompleteLesson(1, lessons[0].ID); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	again, err := svc.CompleteLesson(1, lessons[0].ID)
	if err != nil {
		t.Fatalf("repeat completion failed: %v", err)
	}
	if again.ProgressPercent != 50 {
		t.Fatalf("progress want 50 got %d", again.ProgressPercent)
	}

	var count int64
	if err := db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", 1, lessons[0].ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count progress failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("progress rows want 1 got %d", count)
	}
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	svc, _ := setupCourseServiceTest(t)
	_, lessons := createTestCourse(t, svc, "food-safety", 1)

	_, err := svc.CompleteLesson(7, lessons[0].ID)
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("want ErrNotEnrolled got %v", err)
	}
}

func TestEnrollRejectsUnpublishedAndDuplicate(t *testing.T) {
	svc, _ := setupCourseServiceTest(t)

	draft, err := svc.CreateCourse(CourseInput{
		Title: "Draft Course",
		Slug:  "draft-course",
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if _, err := svc.Enroll(1, draft.ID); !errors.Is(err, ErrCourseUnpublished) {
		t.Fatalf("want ErrCourseUnpublished got %v", err)
	}

	course, _ := createTestCourse(t, svc, "host-training", 1)
	if _, err := svc.Enroll(1, course.ID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if _, err := svc.Enroll(1, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("want ErrAlreadyEnrolled got %v", err)
	}
}

func TestGetBySlugHidesUnpublished(t *testing.T) {
	svc, _ := setupCourseServiceTest(t)
	if _, err := svc.CreateCourse(CourseInput{Title: "Hidden", Slug: "hidden"}); err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	if _, err := svc.GetBySlug("hidden"); !errors.Is(err, ErrCourseUnpublished) {
		t.Fatalf("want ErrCourseUnpublished got %v", err)
	}
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("want ErrCourseNotFound got %v", err)
	}
}

func TestCreateCourseRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupCourseServiceTest(t)
	if _, err := svc.CreateCourse(CourseInput{Title: "One", Slug: "same-slug"}); err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	if _, err := svc.CreateCourse(CourseInput{Title: "Two", Slug: "same-slug"}); !errors.Is(err, ErrCourseInvalid) {
		t.Fatalf("want ErrCourseInvalid got %v", err)
	}
}
