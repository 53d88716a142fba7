package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/queue"
	"github.com/e11even-central/api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSessionExpire = 30 * time.Minute

// PaymentSessionService drives the payment session lifecycle.
type PaymentSessionService struct {
	sessionRepo    *repository.GormPaymentSessionRepository
	tipRepo        *repository.GormTipRepository
	queueClient    *queue.Client
	expireAfter    time.Duration
	paymentBaseURL string
}

// NewPaymentSessionService creates the payment session service.
func NewPaymentSessionService(
	sessionRepo *repository.GormPaymentSessionRepository,
	tipRepo *repository.GormTipRepository,
	queueClient *queue.Client,
	expireMinutes int,
	paymentBaseURL string,
) *PaymentSessionService {
	expireAfter := defaultSessionExpire
	if expireMinutes > 0 {
		expireAfter = time.Duration(expireMinutes) * time.Minute
	}
	return &PaymentSessionService{
		sessionRepo:    sessionRepo,
		tipRepo:        tipRepo,
		queueClient:    queueClient,
		expireAfter:    expireAfter,
		paymentBaseURL: strings.TrimRight(strings.TrimSpace(paymentBaseURL), "/"),
	}
}

func sessionLogger(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return logger.S()
	}
	return logger.SW(kv...)
}

// CreateSessionInput is the create request.
type CreateSessionInput struct {
	TipID     uint
	ReturnURL string
}

// CompleteSessionInput is the complete request.
type CompleteSessionInput struct {
	Status        string // completed / failed
	TransactionID string
}

// Create opens a payment session for a pending tip. When the tip already
// has an unexpired awaiting session, that session is returned instead of
// stacking a second one.
func (s *PaymentSessionService) Create(userID uint, input CreateSessionInput) (*models.PaymentSession, error) {
	if input.TipID == 0 {
		return nil, ErrSessionInvalid
	}

	log := sessionLogger("tip_id", input.TipID, "user_id", userID)
	now := time.Now()

	var session *models.PaymentSession
	reused := false

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var lockedTip models.Tip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lockedTip, input.TipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTipNotFound
			}
			return err
		}
		if lockedTip.TipperID != userID {
			return ErrSessionForbidden
		}
		if lockedTip.PaymentStatus != constants.TipStatusPending {
			return ErrTipNotPending
		}

		sessionRepo := s.sessionRepo.WithTx(tx)

		existing, err := sessionRepo.GetActiveByTipID(lockedTip.ID, now)
		if err != nil {
			return err
		}
		if existing != nil {
			session = existing
			reused = true
			return nil
		}

		reference := uuid.NewString()
		session = &models.PaymentSession{
			Reference:  reference,
			TipID:      lockedTip.ID,
			TipperID:   lockedTip.TipperID,
			ProviderID: lockedTip.ProviderID,
			Amount:     lockedTip.Amount,
			Status:     constants.SessionStatusAwaitingPayment,
			PaymentURL: s.buildPaymentURL(reference),
			ReturnURL:  strings.TrimSpace(input.ReturnURL),
			ExpiresAt:  now.Add(s.expireAfter),
		}
		return sessionRepo.Create(session)
	})
	if err != nil {
		return nil, err
	}

	if reused {
		log.Infow("payment_session_reused", "session_id", session.ID, "reference", session.Reference)
		return session, nil
	}

	if err := s.queueClient.EnqueueSessionTimeoutExpire(
		queue.SessionTimeoutExpirePayload{SessionID: session.ID},
		time.Until(session.ExpiresAt),
	); err != nil {
		// The worker sweep will catch the session anyway.
		log.Warnw("session_expire_enqueue_failed", "session_id", session.ID, "error", err)
	}

	log.Infow("payment_session_created",
		"session_id", session.ID,
		"reference", session.Reference,
		"expires_at", session.ExpiresAt,
	)
	return session, nil
}

// GetByReference returns a session visible to the caller.
// Only the tip's tipper and provider may read it.
func (s *PaymentSessionService) GetByReference(userID uint, reference string) (*models.PaymentSession, error) {
	session, err := s.sessionRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.TipperID != userID && session.ProviderID != userID {
		return nil, ErrSessionForbidden
	}
	return session, nil
}

// Complete records the payment outcome. The session and its tip flip
// together in one locked transaction, exactly once.
func (s *PaymentSessionService) Complete(userID uint, reference string, input CompleteSessionInput) (*models.PaymentSession, error) {
	outcome := strings.ToLower(strings.TrimSpace(input.Status))
	if outcome != constants.SessionCompleteOutcomeCompleted && outcome != constants.SessionCompleteOutcomeFailed {
		return nil, ErrSessionInvalid
	}

	log := sessionLogger("reference", reference, "user_id", userID, "outcome", outcome)
	now := time.Now()

	var session *models.PaymentSession
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockByReference(tx, reference)
		if err != nil {
			return err
		}
		if locked.TipperID != userID {
			return ErrSessionForbidden
		}
		if locked.Terminal() {
			return ErrSessionAlreadyProcessed
		}
		if locked.Expired(now) {
			return ErrSessionExpired
		}

		var lockedTip models.Tip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lockedTip, locked.TipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTipNotFound
			}
			return err
		}

		if outcome == constants.SessionCompleteOutcomeCompleted {
			locked.Status = constants.SessionStatusPaymentReceived
			lockedTip.PaymentStatus = constants.TipStatusCompleted
		} else {
			locked.Status = constants.SessionStatusPaymentFailed
			lockedTip.PaymentStatus = constants.TipStatusFailed
		}
		locked.TransactionID = strings.TrimSpace(input.TransactionID)
		locked.CompletedAt = &now

		if err := s.sessionRepo.WithTx(tx).Update(locked); err != nil {
			return err
		}
		if err := s.tipRepo.WithTx(tx).Update(&lockedTip); err != nil {
			return err
		}
		session = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infow("payment_session_completed", "session_id", session.ID, "status", session.Status)

	if session.Status == constants.SessionStatusPaymentReceived {
		if err := s.queueClient.EnqueueTipReceiptEmail(queue.TipReceiptEmailPayload{TipID: session.TipID}); err != nil {
			log.Warnw("tip_receipt_enqueue_failed", "tip_id", session.TipID, "error", err)
		}
	}

	return session, nil
}

// Cancel abandons an awaiting session. Only the tipper may cancel; the
// tip stays pending so a new session can be opened later.
func (s *PaymentSessionService) Cancel(userID uint, reference string) (*models.PaymentSession, error) {
	log := sessionLogger("reference", reference, "user_id", userID)

	var session *models.PaymentSession
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockByReference(tx, reference)
		if err != nil {
			return err
		}
		if locked.TipperID != userID {
			return ErrSessionForbidden
		}
		if locked.Terminal() {
			return ErrSessionAlreadyProcessed
		}

		now := time.Now()
		locked.Status = constants.SessionStatusCancelled
		locked.CompletedAt = &now
		if err := s.sessionRepo.WithTx(tx).Update(locked); err != nil {
			return err
		}
		session = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infow("payment_session_cancelled", "session_id", session.ID)
	return session, nil
}

// ExpireSession cancels a session whose payment window has passed. It is
// a no-op when the session already reached a terminal status or has not
// expired yet, so the worker may call it repeatedly.
func (s *PaymentSessionService) ExpireSession(sessionID uint) error {
	if sessionID == 0 {
		return nil
	}

	expired := false
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.PaymentSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		now := time.Now()
		if locked.Terminal() || !locked.Expired(now) {
			return nil
		}

		locked.Status = constants.SessionStatusCancelled
		locked.CompletedAt = &now
		if err := s.sessionRepo.WithTx(tx).Update(&locked); err != nil {
			return err
		}
		expired = true
		return nil
	})
	if err != nil {
		return err
	}

	if expired {
		sessionLogger("session_id", sessionID).Infow("payment_session_expired")
	}
	return nil
}

// SweepExpired cancels every awaiting session past its window and
// returns how many were closed.
func (s *PaymentSessionService) SweepExpired(limit int) (int, error) {
	sessions, err := s.sessionRepo.ListExpiredAwaiting(time.Now(), limit)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, session := range sessions {
		if err := s.ExpireSession(session.ID); err != nil {
			sessionLogger("session_id", session.ID).Warnw("session_expire_sweep_failed", "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// ListAdmin lists sessions for the console.
func (s *PaymentSessionService) ListAdmin(filter repository.PaymentSessionListFilter) ([]models.PaymentSession, int64, error) {
	return s.sessionRepo.List(filter)
}

func (s *PaymentSessionService) lockByReference(tx *gorm.DB, reference string) (*models.PaymentSession, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrSessionNotFound
	}
	var locked models.PaymentSession
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ?", reference).
		Limit(1).
		Find(&locked)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSessionNotFound
	}
	return &locked, nil
}

func (s *PaymentSessionService) buildPaymentURL(reference string) string {
	base := s.paymentBaseURL
	if base == "" {
		base = "https://pay.e11evencentral.local"
	}
	return fmt.Sprintf("%s/pay/%s", base, reference)
}
