package response

import "net/http"

// Machine-readable error codes returned in the error envelope.
const (
	CodeValidationError         = "VALIDATION_ERROR"
	CodeUserRequired            = "USER_REQUIRED"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeNotFound                = "NOT_FOUND"
	CodeTipNotFound             = "TIP_NOT_FOUND"
	CodeSessionNotFound         = "SESSION_NOT_FOUND"
	CodeTipNotPending           = "TIP_NOT_PENDING"
	CodeSessionExpired          = "SESSION_EXPIRED"
	CodeSessionAlreadyProcessed = "SESSION_ALREADY_PROCESSED"
	CodeRateLimited             = "RATE_LIMITED"
	CodeInternalError           = "INTERNAL_ERROR"

	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserDisabled       = "USER_DISABLED"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeCaptchaInvalid     = "CAPTCHA_INVALID"

	CodeCourseNotFound  = "COURSE_NOT_FOUND"
	CodeNotEnrolled     = "NOT_ENROLLED"
	CodeAlreadyEnrolled = "ALREADY_ENROLLED"

	CodeChannelNotFound  = "CHANNEL_NOT_FOUND"
	CodeChannelArchived  = "CHANNEL_ARCHIVED"
	CodeNotChannelMember = "NOT_CHANNEL_MEMBER"

	CodeShiftNotFound   = "SHIFT_NOT_FOUND"
	CodeShiftFull       = "SHIFT_FULL"
	CodeShiftStarted    = "SHIFT_STARTED"
	CodeAlreadyAssigned = "ALREADY_ASSIGNED"
)

var codeStatus = map[string]int{
	CodeValidationError:         http.StatusBadRequest,
	CodeUserRequired:            http.StatusUnauthorized,
	CodeUnauthorized:            http.StatusUnauthorized,
	CodeForbidden:               http.StatusForbidden,
	CodeNotFound:                http.StatusNotFound,
	CodeTipNotFound:             http.StatusNotFound,
	CodeSessionNotFound:         http.StatusNotFound,
	CodeTipNotPending:           http.StatusBadRequest,
	CodeSessionExpired:          http.StatusBadRequest,
	CodeSessionAlreadyProcessed: http.StatusBadRequest,
	CodeRateLimited:             http.StatusTooManyRequests,
	CodeInternalError:           http.StatusInternalServerError,

	CodeEmailTaken:         http.StatusBadRequest,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUserDisabled:       http.StatusForbidden,
	CodeWeakPassword:       http.StatusBadRequest,
	CodeCaptchaInvalid:     http.StatusBadRequest,

	CodeCourseNotFound:  http.StatusNotFound,
	CodeNotEnrolled:     http.StatusBadRequest,
	CodeAlreadyEnrolled: http.StatusBadRequest,

	CodeChannelNotFound:  http.StatusNotFound,
	CodeChannelArchived:  http.StatusBadRequest,
	CodeNotChannelMember: http.StatusForbidden,

	CodeShiftNotFound:   http.StatusNotFound,
	CodeShiftFull:       http.StatusConflict,
	CodeShiftStarted:    http.StatusBadRequest,
	CodeAlreadyAssigned: http.StatusConflict,
}

// StatusForCode maps an error code to its HTTP status.
func StatusForCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
