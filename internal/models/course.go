package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a training course in the university module.
type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Summary     string         `gorm:"default:''" json:"summary"`
	Body        string         `gorm:"type:text" json:"body"`
	Category    string         `gorm:"index;default:''" json:"category"`
	IsPublished bool           `gorm:"index;default:false" json:"is_published"`
	Position    int            `gorm:"default:0" json:"position"`
	Lessons     []Lesson       `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Course) TableName() string {
	return "courses"
}

// Lesson is one unit inside a course.
type Lesson struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CourseID        uint           `gorm:"index;not null" json:"course_id"`
	Title           string         `gorm:"not null" json:"title"`
	Body            string         `gorm:"type:text" json:"body"`
	Position        int            `gorm:"default:0" json:"position"`
	DurationMinutes int            `gorm:"default:0" json:"duration_minutes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Lesson) TableName() string {
	return "lessons"
}
