package queue

import (
	"encoding/json"

	"github.com/e11even-central/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSessionTimeoutExpire cancels a payment session after its window.
	TaskSessionTimeoutExpire = constants.TaskSessionTimeoutExpire
	// TaskTipReceiptEmail sends a receipt email for a completed tip.
	TaskTipReceiptEmail = constants.TaskTipReceiptEmail
)

// SessionTimeoutExpirePayload identifies the session to expire.
type SessionTimeoutExpirePayload struct {
	SessionID uint `json:"session_id"`
}

// TipReceiptEmailPayload identifies the tip to send a receipt for.
type TipReceiptEmailPayload struct {
	TipID uint `json:"tip_id"`
}

// NewSessionTimeoutExpireTask builds a session expiry task.
func NewSessionTimeoutExpireTask(payload SessionTimeoutExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionTimeoutExpire, body), nil
}

// NewTipReceiptEmailTask builds a tip receipt email task.
func NewTipReceiptEmailTask(payload TipReceiptEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTipReceiptEmail, body), nil
}
