package public

import (
	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/repository"

	"github.com/gin-gonic/gin"

	handlershared "github.com/e11even-central/api/internal/http/handlers/shared"
)

// ListCourses lists published training courses.
func (h *Handler) ListCourses(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	courses, total, err := h.CourseService.ListPublished(repository.CourseListFilter{
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

// GetCourse returns a published course with its lessons.
func (h *Handler) GetCourse(c *gin.Context) {
	course, err := h.CourseService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, universityErrorRules, response.CodeInternalError, "course fetch failed")
		return
	}
	response.Success(c, gin.H{"course": course})
}

// EnrollCourse joins the caller to a course.
func (h *Handler) EnrollCourse(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	courseID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid course id", nil)
		return
	}

	enrollment, err := h.CourseService.Enroll(userID, courseID)
	if err != nil {
		respondWithMappedError(c, err, universityErrorRules, response.CodeInternalError, "enroll failed")
		return
	}
	response.Success(c, gin.H{"enrollment": enrollment})
}

// MyEnrollments lists the caller's enrollments.
func (h *Handler) MyEnrollments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.CourseService.ListEnrollments(userID)
	if err != nil {
		respondError(c, response.CodeInternalError, "enrollment list failed", err)
		return
	}
	response.Success(c, gin.H{"enrollments": enrollments})
}

// CompleteLesson marks a lesson done and returns the updated enrollment.
func (h *Handler) CompleteLesson(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid lesson id", nil)
		return
	}

	enrollment, err := h.CourseService.CompleteLesson(userID, lessonID)
	if err != nil {
		respondWithMappedError(c, err, universityErrorRules, response.CodeInternalError, "lesson completion failed")
		return
	}
	response.Success(c, gin.H{"enrollment": enrollment})
}
