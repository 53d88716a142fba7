package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/queue"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSessionServiceTest(t *testing.T) (*PaymentSessionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:session_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tip{},
		&models.PaymentSession{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	sessionRepo := repository.NewPaymentSessionRepository(db)
	tipRepo := repository.NewTipRepository(db)
	return NewPaymentSessionService(sessionRepo, tipRepo, queueClient, 30, "https://pay.test.local"), db
}

func createSessionTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("session_user_%d@example.com", id),
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createPendingTip(t *testing.T, db *gorm.DB, tipperID, providerID uint, amount int64) *models.Tip {
	t.Helper()
	tip := &models.Tip{
		ProviderID:    providerID,
		TipperID:      tipperID,
		Amount:        models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		PaymentMethod: constants.TipMethodCreditCard,
		PaymentStatus: constants.TipStatusPending,
	}
	if err := db.Create(tip).Error; err != nil {
		t.Fatalf("create tip failed: %v", err)
	}
	return tip
}

func TestSessionCreateAndComplete(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.Status != constants.SessionStatusAwaitingPayment {
		t.Fatalf("session status want awaiting_payment got %s", session.Status)
	}
	if session.Reference == "" {
		t.Fatalf("expected a session reference")
	}
	if session.PaymentURL != "https://pay.test.local/pay/"+session.Reference {
		t.Fatalf("payment url unexpected: %s", session.PaymentURL)
	}

	completed, err := svc.Complete(1, session.Reference, CompleteSessionInput{
		Status:        constants.SessionCompleteOutcomeCompleted,
		TransactionID: "txn-100",
	})
	if err != nil {
		t.Fatalf("complete session failed: %v", err)
	}
	if completed.Status != constants.SessionStatusPaymentReceived {
		t.Fatalf("session status want payment_received got %s", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
	if completed.TransactionID != "txn-100" {
		t.Fatalf("transaction id want txn-100 got %s", completed.TransactionID)
	}

	var storedTip models.Tip
	if err := db.First(&storedTip, tip.ID).Error; err != nil {
		t.Fatalf("load tip failed: %v", err)
	}
	if storedTip.PaymentStatus != constants.TipStatusCompleted {
		t.Fatalf("tip status want completed got %s", storedTip.PaymentStatus)
	}
}

func TestSessionCompleteFailedOutcomeFlipsTip(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 30)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	failed, err := svc.Complete(1, session.Reference, CompleteSessionInput{
		Status: constants.SessionCompleteOutcomeFailed,
	})
	if err != nil {
		t.Fatalf("complete session failed: %v", err)
	}
	if failed.Status != constants.SessionStatusPaymentFailed {
		t.Fatalf("session status want payment_failed got %s", failed.Status)
	}

	var storedTip models.Tip
	if err := db.First(&storedTip, tip.ID).Error; err != nil {
		t.Fatalf("load tip failed: %v", err)
	}
	if storedTip.PaymentStatus != constants.TipStatusFailed {
		t.Fatalf("tip status want failed got %s", storedTip.PaymentStatus)
	}
}

func TestSessionCompleteTwiceReturnsAlreadyProcessed(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if _, err := svc.Complete(1, session.Reference, CompleteSessionInput{
		Status: constants.SessionCompleteOutcomeCompleted,
	}); err != nil {
		t.Fatalf("first complete failed: %v", err)
	}

	_, err = svc.Complete(1, session.Reference, CompleteSessionInput{
		Status: constants.SessionCompleteOutcomeFailed,
	})
	if !errors.Is(err, ErrSessionAlreadyProcessed) {
		t.Fatalf("want ErrSessionAlreadyProcessed got %v", err)
	}

	// The first outcome must stick.
	var storedTip models.Tip
	if err := db.First(&storedTip, tip.ID).Error; err != nil {
		t.Fatalf("load tip failed: %v", err)
	}
	if storedTip.PaymentStatus != constants.TipStatusCompleted {
		t.Fatalf("tip status want completed got %s", storedTip.PaymentStatus)
	}
}

func TestSessionCompleteExpiredKeepsTipPending(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if err := db.Model(&models.PaymentSession{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("force expiry failed: %v", err)
	}

	_, err = svc.Complete(1, session.Reference, CompleteSessionInput{
		Status: constants.SessionCompleteOutcomeCompleted,
	})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired got %v", err)
	}

	var storedTip models.Tip
	if err := db.First(&storedTip, tip.ID).Error; err != nil {
		t.Fatalf("load tip failed: %v", err)
	}
	if storedTip.PaymentStatus != constants.TipStatusPending {
		t.Fatalf("tip status want pending got %s", storedTip.PaymentStatus)
	}
}

func TestSessionCreateReusesActiveSession(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	first, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected session reuse, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&models.PaymentSession{}).
		Where("tip_id = ?", tip.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count sessions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("session count want 1 got %d", count)
	}
}

func TestSessionCreateRequiresPendingTip(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	if err := db.Model(&models.Tip{}).
		Where("id = ?", tip.ID).
		Update("payment_status", constants.TipStatusCompleted).Error; err != nil {
		t.Fatalf("force completed failed: %v", err)
	}

	_, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if !errors.Is(err, ErrTipNotPending) {
		t.Fatalf("want ErrTipNotPending got %v", err)
	}

	var count int64
	if err := db.Model(&models.PaymentSession{}).
		Where("tip_id = ?", tip.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count sessions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("session count want 0 got %d", count)
	}
}

func TestSessionGetVisibleToTipperAndProviderOnly(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	createSessionTestUser(t, db, 3)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	if _, err := svc.GetByReference(1, session.Reference); err != nil {
		t.Fatalf("tipper get failed: %v", err)
	}
	if _, err := svc.GetByReference(2, session.Reference); err != nil {
		t.Fatalf("provider get failed: %v", err)
	}
	if _, err := svc.GetByReference(3, session.Reference); !errors.Is(err, ErrSessionForbidden) {
		t.Fatalf("want ErrSessionForbidden got %v", err)
	}
}

func TestSessionCreateForbiddenForNonTipper(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	createSessionTestUser(t, db, 3)
	tip := createPendingTip(t, db, 1, 2, 25)

	_, err := svc.Create(3, CreateSessionInput{TipID: tip.ID})
	if !errors.Is(err, ErrSessionForbidden) {
		t.Fatalf("want ErrSessionForbidden got %v", err)
	}
}

func TestSessionCancelLeavesTipPendingAndAllowsNewSession(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	cancelled, err := svc.Cancel(1, session.Reference)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.SessionStatusCancelled {
		t.Fatalf("session status want cancelled got %s", cancelled.Status)
	}

	var storedTip models.Tip
	if err := db.First(&storedTip, tip.ID).Error; err != nil {
		t.Fatalf("load tip failed: %v", err)
	}
	if storedTip.PaymentStatus != constants.TipStatusPending {
		t.Fatalf("tip status want pending got %s", storedTip.PaymentStatus)
	}

	// A cancelled session no longer completes.
	if _, err := svc.Complete(1, session.Reference, CompleteSessionInput{
		Status: constants.SessionCompleteOutcomeCompleted,
	}); !errors.Is(err, ErrSessionAlreadyProcessed) {
		t.Fatalf("want ErrSessionAlreadyProcessed got %v", err)
	}

	// The tip can open a fresh session.
	fresh, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("fresh create failed: %v", err)
	}
	if fresh.ID == session.ID {
		t.Fatalf("expected a new session after cancel")
	}
}

func TestExpireSessionIsIdempotent(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)
	tip := createPendingTip(t, db, 1, 2, 25)

	session, err := svc.Create(1, CreateSessionInput{TipID: tip.ID})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	// Not expired yet: no-op.
	if err := svc.ExpireSession(session.ID); err != nil {
		t.Fatalf("expire no-op failed: %v", err)
	}
	var stored models.PaymentSession
	if err := db.First(&stored, session.ID).Error; err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if stored.Status != constants.SessionStatusAwaitingPayment {
		t.Fatalf("session status want awaiting_payment got %s", stored.Status)
	}

	if err := db.Model(&models.PaymentSession{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("force expiry failed: %v", err)
	}

	if err := svc.ExpireSession(session.ID); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if err := svc.ExpireSession(session.ID); err != nil {
		t.Fatalf("repeated expire failed: %v", err)
	}
	if err := db.First(&stored, session.ID).Error; err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if stored.Status != constants.SessionStatusCancelled {
		t.Fatalf("session status want cancelled got %s", stored.Status)
	}

	// Missing sessions are ignored.
	if err := svc.ExpireSession(99999); err != nil {
		t.Fatalf("expire missing session failed: %v", err)
	}
}

func TestSweepExpiredClosesOnlyOverdueSessions(t *testing.T) {
	svc, db := setupSessionServiceTest(t)
	createSessionTestUser(t, db, 1)
	createSessionTestUser(t, db, 2)

	overdueTip := createPendingTip(t, db, 1, 2, 25)
	freshTip := createPendingTip(t, db, 1, 2, 15)

	overdue, err := svc.Create(1, CreateSessionInput{TipID: overdueTip.ID})
	if err != nil {
		t.Fatalf("create overdue session failed: %v", err)
	}
	fresh, err := svc.Create(1, CreateSessionInput{TipID: freshTip.ID})
	if err != nil {
		t.Fatalf("create fresh session failed: %v", err)
	}
	if err := db.Model(&models.PaymentSession{}).
		Where("id = ?", overdue.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("force expiry failed: %v", err)
	}

	count, err := svc.SweepExpired(100)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("sweep count want 1 got %d", count)
	}

	var stored models.PaymentSession
	if err := db.First(&stored, fresh.ID).Error; err != nil {
		t.Fatalf("load fresh session failed: %v", err)
	}
	if stored.Status != constants.SessionStatusAwaitingPayment {
		t.Fatalf("fresh session status want awaiting_payment got %s", stored.Status)
	}
}
