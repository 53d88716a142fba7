package models

import "time"

// Enrollment links a staff member to a course they are taking.
type Enrollment struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	UserID           uint       `gorm:"index;uniqueIndex:uniq_enrollment_user_course;not null" json:"user_id"`
	CourseID         uint       `gorm:"index;uniqueIndex:uniq_enrollment_user_course;not null" json:"course_id"`
	Status           string     `gorm:"index;default:'enrolled'" json:"status"` // enrolled / completed
	ProgressPercent  int        `gorm:"default:0" json:"progress_percent"`
	CompletedLessons int        `gorm:"default:0" json:"completed_lessons"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonProgress records a completed lesson for an enrollment.
type LessonProgress struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:uniq_lesson_progress;not null" json:"user_id"`
	LessonID    uint      `gorm:"uniqueIndex:uniq_lesson_progress;not null" json:"lesson_id"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TableName sets the table name.
func (LessonProgress) TableName() string {
	return "lesson_progress"
}
