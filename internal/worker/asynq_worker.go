package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/provider"
	"github.com/e11even-central/api/internal/queue"
	"github.com/e11even-central/api/internal/repository"
	"github.com/e11even-central/api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer over the shared container.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSessionTimeoutExpire, c.handleSessionTimeoutExpire)
	mux.HandleFunc(queue.TaskTipReceiptEmail, c.handleTipReceiptEmail)
}

func (c *Consumer) handleSessionTimeoutExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_session_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SessionTimeoutExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_session_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.SessionID == 0 {
		logger.Debugw("worker_session_expire_skip_invalid_payload", "session_id", payload.SessionID)
		return nil
	}
	if c.PaymentSessionService == nil {
		logger.Warnw("worker_session_expire_skip_service_nil", "session_id", payload.SessionID)
		return nil
	}
	if err := c.PaymentSessionService.ExpireSession(payload.SessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			logger.Debugw("worker_session_expire_skip_not_found", "session_id", payload.SessionID)
			return nil
		}
		logger.Warnw("worker_session_expire_failed", "session_id", payload.SessionID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleTipReceiptEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_tip_receipt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TipReceiptEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_tip_receipt_unmarshal_failed", "error", err)
		return err
	}
	if payload.TipID == 0 {
		logger.Debugw("worker_tip_receipt_skip_invalid_payload", "tip_id", payload.TipID)
		return nil
	}
	tip, err := c.TipRepo.GetByID(payload.TipID)
	if err != nil {
		logger.Warnw("worker_tip_receipt_fetch_tip_failed", "tip_id", payload.TipID, "error", err)
		return err
	}
	if tip == nil {
		logger.Debugw("worker_tip_receipt_skip_tip_not_found", "tip_id", payload.TipID)
		return nil
	}
	tipper, err := c.UserRepo.GetByID(tip.TipperID)
	if err != nil {
		logger.Warnw("worker_tip_receipt_fetch_tipper_failed", "tip_id", tip.ID, "user_id", tip.TipperID, "error", err)
		return err
	}
	if tipper == nil || strings.TrimSpace(tipper.Email) == "" {
		logger.Debugw("worker_tip_receipt_skip_empty_receiver", "tip_id", tip.ID)
		return nil
	}
	providerName := ""
	if staff, err := c.UserRepo.GetByID(tip.ProviderID); err == nil && staff != nil {
		providerName = strings.TrimSpace(staff.DisplayName)
		if providerName == "" {
			providerName = staff.Email
		}
	}
	if c.EmailService == nil {
		logger.Warnw("worker_tip_receipt_skip_email_service_nil", "tip_id", tip.ID)
		return nil
	}
	input := service.TipReceiptEmailInput{
		TipperName:   tipper.DisplayName,
		ProviderName: providerName,
		Amount:       tip.Amount,
		Reference:    c.receiptReference(tip.ID),
	}
	if err := c.EmailService.SendTipReceiptEmail(tipper.Email, input); err != nil {
		logger.Warnw("worker_tip_receipt_send_failed",
			"tip_id", tip.ID,
			"receiver_email", tipper.Email,
			"error", err,
		)
		return err
	}
	return nil
}

// receiptReference resolves the payment reference printed on the
// receipt. It prefers the latest payment session tied to the tip and
// falls back to the tip ID.
func (c *Consumer) receiptReference(tipID uint) string {
	sessions, _, err := c.SessionRepo.List(repository.PaymentSessionListFilter{
		TipID:    tipID,
		Page:     1,
		PageSize: 1,
	})
	if err == nil && len(sessions) > 0 && strings.TrimSpace(sessions[0].Reference) != "" {
		return sessions[0].Reference
	}
	return fmt.Sprintf("TIP-%d", tipID)
}
