package admin

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// CourseRequest is the console course create/update payload.
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	IsPublished bool   `json:"is_published"`
	Position    int    `json:"position"`
}

func (r CourseRequest) toInput() service.CourseInput {
	return service.CourseInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Summary:     r.Summary,
		Body:        r.Body,
		Category:    r.Category,
		IsPublished: r.IsPublished,
		Position:    r.Position,
	}
}

// LessonRequest is the console lesson create/update payload.
type LessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Body            string `json:"body"`
	Position        int    `json:"position"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (r LessonRequest) toInput() service.LessonInput {
	return service.LessonInput{
		Title:           r.Title,
		Body:            r.Body,
		Position:        r.Position,
		DurationMinutes: r.DurationMinutes,
	}
}

// ListCourses lists all courses, drafts included.
func (h *Handler) ListCourses(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	courses, total, err := h.CourseService.ListAdmin(repository.CourseListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternalError, "course list failed", err)
		return
	}

	response.SuccessWithPage(c, courses, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// CreateCourse adds a training course.
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	course, err := h.CourseService.CreateCourse(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "course create failed")
		return
	}
	response.Success(c, gin.H{"course": course})
}

// UpdateCourse edits a training course.
func (h *Handler) UpdateCourse(c *gin.Context) {
	courseID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid course id", nil)
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	course, err := h.CourseService.UpdateCourse(courseID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "course update failed")
		return
	}
	response.Success(c, gin.H{"course": course})
}

// DeleteCourse soft-deletes a course.
func (h *Handler) DeleteCourse(c *gin.Context) {
	courseID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid course id", nil)
		return
	}

	if err := h.CourseService.DeleteCourse(courseID); err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "course delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateLesson adds a lesson to a course.
func (h *Handler) CreateLesson(c *gin.Context) {
	courseID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid course id", nil)
		return
	}

	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	lesson, err := h.CourseService.CreateLesson(courseID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "lesson create failed")
		return
	}
	response.Success(c, gin.H{"lesson": lesson})
}

// UpdateLesson edits a lesson.
func (h *Handler) UpdateLesson(c *gin.Context) {
	lessonID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid lesson id", nil)
		return
	}

	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	lesson, err := h.CourseService.UpdateLesson(lessonID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "lesson update failed")
		return
	}
	response.Success(c, gin.H{"lesson": lesson})
}

// DeleteLesson removes a lesson from its course.
func (h *Handler) DeleteLesson(c *gin.Context) {
	lessonID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid lesson id", nil)
		return
	}

	if err := h.CourseService.DeleteLesson(lessonID); err != nil {
		respondWithMappedError(c, err, courseAdminErrorRules, response.CodeInternalError, "lesson delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
