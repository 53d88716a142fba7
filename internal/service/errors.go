package service

import "errors"

// Gratuity errors.
var (
	ErrTipNotFound             = errors.New("tip not found")
	ErrTipNotPending           = errors.New("tip is not pending")
	ErrTipInvalid              = errors.New("tip input invalid")
	ErrTipForbidden            = errors.New("tip access forbidden")
	ErrSessionNotFound         = errors.New("payment session not found")
	ErrSessionForbidden        = errors.New("payment session access forbidden")
	ErrSessionExpired          = errors.New("payment session expired")
	ErrSessionAlreadyProcessed = errors.New("payment session already processed")
	ErrSessionInvalid          = errors.New("payment session input invalid")
)

// Auth errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserInvalid        = errors.New("user input invalid")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too weak")
	ErrLoginRateLimited   = errors.New("too many login attempts")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrInviteCodeInvalid  = errors.New("invite code invalid")
)

// University errors.
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrNotEnrolled       = errors.New("not enrolled in course")
	ErrAlreadyEnrolled   = errors.New("already enrolled in course")
	ErrCourseUnpublished = errors.New("course not published")
	ErrCourseInvalid     = errors.New("course input invalid")
)

// Chat errors.
var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrChannelArchived  = errors.New("channel archived")
	ErrChannelPrivate   = errors.New("channel is private")
	ErrNotChannelMember = errors.New("not a channel member")
	ErrMessageInvalid   = errors.New("message input invalid")
	ErrChannelInvalid   = errors.New("channel input invalid")
)

// Schedule errors.
var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftInvalid        = errors.New("shift input invalid")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAssignmentForbidden = errors.New("assignment access forbidden")
	ErrShiftFull           = errors.New("shift capacity reached")
	ErrShiftStarted        = errors.New("shift already started")
	ErrAlreadyAssigned     = errors.New("already assigned to shift")
)

// Admin errors.
var (
	ErrAdminNotFound  = errors.New("admin not found")
	ErrAdminForbidden = errors.New("admin operation forbidden")
)

// Email errors.
var (
	ErrEmailServiceDisabled      = errors.New("email sending disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
