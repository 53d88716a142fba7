package admin

import (
	"errors"

	"github.com/e11even-central/api/internal/http/response"
	"github.com/e11even-central/api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a service error to its API error response.
type mappedHandlerError struct {
	target  error
	code    string
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode, fallbackMessage string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMessage, err)
}

var adminAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeInvalidCredentials, message: "invalid username or password"},
	{target: service.ErrCaptchaInvalid, code: response.CodeCaptchaInvalid, message: "captcha verification failed"},
	{target: service.ErrWeakPassword, code: response.CodeWeakPassword, message: "password does not meet the policy"},
	{target: service.ErrAdminNotFound, code: response.CodeNotFound, message: "admin not found"},
	{target: service.ErrLoginRateLimited, code: response.CodeRateLimited, message: "too many login attempts, try again later"},
}

var staffAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, message: "staff account not found"},
	{target: service.ErrUserInvalid, code: response.CodeValidationError, message: "staff input invalid"},
	{target: service.ErrEmailTaken, code: response.CodeEmailTaken, message: "email is already registered"},
	{target: service.ErrInvalidEmail, code: response.CodeValidationError, message: "email address invalid"},
	{target: service.ErrWeakPassword, code: response.CodeWeakPassword, message: "password does not meet the policy"},
}

var adminAccountErrorRules = []mappedHandlerError{
	{target: service.ErrAdminNotFound, code: response.CodeNotFound, message: "admin not found"},
	{target: service.ErrAdminForbidden, code: response.CodeForbidden, message: "operation not allowed on this admin"},
	{target: service.ErrInvalidCredentials, code: response.CodeValidationError, message: "username or password invalid"},
}

var courseAdminErrorRules = []mappedHandlerError{
	{target: service.ErrCourseNotFound, code: response.CodeCourseNotFound, message: "course not found"},
	{target: service.ErrLessonNotFound, code: response.CodeNotFound, message: "lesson not found"},
	{target: service.ErrCourseInvalid, code: response.CodeValidationError, message: "course input invalid"},
}

var channelAdminErrorRules = []mappedHandlerError{
	{target: service.ErrChannelNotFound, code: response.CodeChannelNotFound, message: "channel not found"},
	{target: service.ErrChannelInvalid, code: response.CodeValidationError, message: "channel input invalid"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, message: "staff account not found"},
}

var shiftAdminErrorRules = []mappedHandlerError{
	{target: service.ErrShiftNotFound, code: response.CodeShiftNotFound, message: "shift not found"},
	{target: service.ErrShiftInvalid, code: response.CodeValidationError, message: "shift input invalid"},
	{target: service.ErrShiftFull, code: response.CodeShiftFull, message: "shift capacity reached"},
	{target: service.ErrAlreadyAssigned, code: response.CodeAlreadyAssigned, message: "staff already assigned to this shift"},
	{target: service.ErrAssignmentNotFound, code: response.CodeNotFound, message: "assignment not found"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, message: "staff account not found"},
}
