package public

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

var tipErrorRules = []mappedHandlerError{
	{target: service.ErrTipNotFound, code: response.CodeTipNotFound, message: "tip not found"},
	{target: service.ErrTipForbidden, code: response.CodeForbidden, message: "you cannot access this tip"},
	{target: service.ErrTipNotPending, code: response.CodeTipNotPending, message: "tip is no longer pending"},
	{target: service.ErrTipInvalid, code: response.CodeValidationError, message: "tip input invalid"},
}

var sessionErrorRules = []mappedHandlerError{
	{target: service.ErrTipNotFound, code: response.CodeTipNotFound, message: "tip not found"},
	{target: service.ErrTipNotPending, code: response.CodeTipNotPending, message: "tip is no longer pending"},
	{target: service.ErrSessionNotFound, code: response.CodeSessionNotFound, message: "payment session not found"},
	{target: service.ErrSessionForbidden, code: response.CodeForbidden, message: "you cannot access this payment session"},
	{target: service.ErrSessionExpired, code: response.CodeSessionExpired, message: "payment session expired"},
	{target: service.ErrSessionAlreadyProcessed, code: response.CodeSessionAlreadyProcessed, message: "payment session already processed"},
	{target: service.ErrSessionInvalid, code: response.CodeValidationError, message: "payment session input invalid"},
}

var universityErrorRules = []mappedHandlerError{
	{target: service.ErrCourseNotFound, code: response.CodeCourseNotFound, message: "course not found"},
	{target: service.ErrCourseUnpublished, code: response.CodeCourseNotFound, message: "course not found"},
	{target: service.ErrLessonNotFound, code: response.CodeNotFound, message: "lesson not found"},
	{target: service.ErrNotEnrolled, code: response.CodeNotEnrolled, message: "not enrolled in this course"},
	{target: service.ErrAlreadyEnrolled, code: response.CodeAlreadyEnrolled, message: "already enrolled in this course"},
}

var chatErrorRules = []mappedHandlerError{
	{target: service.ErrChannelNotFound, code: response.CodeChannelNotFound, message: "channel not found"},
	{target: service.ErrChannelArchived, code: response.CodeChannelArchived, message: "channel is archived"},
	{target: service.ErrChannelPrivate, code: response.CodeForbidden, message: "channel is private"},
	{target: service.ErrNotChannelMember, code: response.CodeNotChannelMember, message: "join the channel first"},
	{target: service.ErrMessageInvalid, code: response.CodeValidationError, message: "message body invalid"},
}

var scheduleErrorRules = []mappedHandlerError{
	{target: service.ErrShiftNotFound, code: response.CodeShiftNotFound, message: "shift not found"},
	{target: service.ErrAssignmentNotFound, code: response.CodeNotFound, message: "assignment not found"},
	{target: service.ErrAssignmentForbidden, code: response.CodeForbidden, message: "you cannot respond to this assignment"},
	{target: service.ErrShiftStarted, code: response.CodeShiftStarted, message: "shift has already started"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeInvalidCredentials, message: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeUserDisabled, message: "account is disabled"},
	{target: service.ErrEmailTaken, code: response.CodeEmailTaken, message: "email is already registered"},
	{target: service.ErrWeakPassword, code: response.CodeWeakPassword, message: "password does not meet the policy"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, message: "user not found"},
	{target: service.ErrLoginRateLimited, code: response.CodeRateLimited, message: "too many login attempts, try again later"},
	{target: service.ErrInviteCodeInvalid, code: response.CodeValidationError, message: "invite code invalid"},
}
