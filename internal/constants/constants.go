package constants

// Tip payment status constants
const (
	TipStatusPending   = "pending"
	TipStatusCompleted = "completed"
	TipStatusFailed    = "failed"
	TipStatusRefunded  = "refunded"
)

// Tip payment method constants
const (
	TipMethodCash         = "cash"
	TipMethodCreditCard   = "credit_card"
	TipMethodVenueAccount = "venue_account"
)

// Payment session status constants
const (
	SessionStatusAwaitingPayment = "awaiting_payment"
	SessionStatusPaymentReceived = "payment_received"
	SessionStatusPaymentFailed   = "payment_failed"
	SessionStatusCancelled       = "cancelled"
)

// Session completion outcomes accepted from the client
const (
	SessionCompleteOutcomeCompleted = "completed"
	SessionCompleteOutcomeFailed    = "failed"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Login log status constants
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// Login log failure reason constants
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// Enrollment status constants
const (
	EnrollmentStatusEnrolled  = "enrolled"
	EnrollmentStatusCompleted = "completed"
)

// Chat member role constants
const (
	ChatMemberRoleMember    = "member"
	ChatMemberRoleModerator = "moderator"
)

// Shift assignment status constants
const (
	AssignmentStatusAssigned  = "assigned"
	AssignmentStatusConfirmed = "confirmed"
	AssignmentStatusDeclined  = "declined"
)

// Queue constants
const (
	QueueDefault             = "default"
	TaskSessionTimeoutExpire = "session:timeout_expire"
	TaskTipReceiptEmail      = "tip:receipt_email"
)

// Cache default prefix
const (
	RedisPrefixDefault = "e11"
)

// Captcha constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)
