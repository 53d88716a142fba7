package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSessionRepositoryTest(t *testing.T) (*GormPaymentSessionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:session_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return NewPaymentSessionRepository(db), db
}

func createTestSession(t *testing.T, db *gorm.DB, tipID uint, status string, expiresAt time.Time) *models.PaymentSession {
	t.Helper()
	session := models.PaymentSession{
		Reference:  fmt.Sprintf("ref-%d-%d", tipID, time.Now().UnixNano()),
		TipID:      tipID,
		TipperID:   1,
		ProviderID: 2,
		Amount:     models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Status:     status,
		ExpiresAt:  expiresAt,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	return &session
}

func TestGetActiveByTipIDSkipsExpiredAndTerminal(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	createTestSession(t, db, 10, constants.SessionStatusAwaitingPayment, now.Add(-time.Minute))
	createTestSession(t, db, 10, constants.SessionStatusCancelled, now.Add(30*time.Minute))
	active := createTestSession(t, db, 10, constants.SessionStatusAwaitingPayment, now.Add(30*time.Minute))
	createTestSession(t, db, 11, constants.SessionStatusAwaitingPayment, now.Add(30*time.Minute))

	got, err := repo.GetActiveByTipID(10, now)
	if err != nil {
		t.Fatalf("get active session failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected an active session")
	}
	if got.ID != active.ID {
		t.Fatalf("active session want id=%d got id=%d", active.ID, got.ID)
	}
}

func TestGetActiveByTipIDReturnsNilWhenNone(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	createTestSession(t, db, 20, constants.SessionStatusPaymentReceived, now.Add(30*time.Minute))

	got, err := repo.GetActiveByTipID(20, now)
	if err != nil {
		t.Fatalf("get active session failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got id=%d", got.ID)
	}
}

func TestListExpiredAwaitingOnlyReturnsAwaitingPastWindow(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	expired := createTestSession(t, db, 30, constants.SessionStatusAwaitingPayment, now.Add(-time.Minute))
	createTestSession(t, db, 31, constants.SessionStatusAwaitingPayment, now.Add(time.Minute))
	createTestSession(t, db, 32, constants.SessionStatusCancelled, now.Add(-time.Minute))
	createTestSession(t, db, 33, constants.SessionStatusPaymentReceived, now.Add(-time.Minute))

	rows, err := repo.ListExpiredAwaiting(now, 50)
	if err != nil {
		t.Fatalf("list expired awaiting failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows len want 1 got %d", len(rows))
	}
	if rows[0].ID != expired.ID {
		t.Fatalf("expired session want id=%d got id=%d", expired.ID, rows[0].ID)
	}
}

func TestGetByReference(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	session := createTestSession(t, db, 40, constants.SessionStatusAwaitingPayment, now.Add(30*time.Minute))

	got, err := repo.GetByReference(session.Reference)
	if err != nil {
		t.Fatalf("get by reference failed: %v", err)
	}
	if got == nil || got.ID != session.ID {
		t.Fatalf("expected session id=%d, got=%+v", session.ID, got)
	}

	got, err = repo.GetByReference("missing-ref")
	if err != nil {
		t.Fatalf("get missing reference failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing reference")
	}
}
