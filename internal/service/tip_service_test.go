package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTipServiceTest(t *testing.T) (*TipService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:tip_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tip{},
		&models.PaymentSession{},
		&models.Enrollment{},
		&models.Shift{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	tipRepo := repository.NewTipRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	return NewTipService(tipRepo, userRepo, dashboardRepo), db
}

func createTipTestUser(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("tip_user_%d@example.com", id),
		PasswordHash: "hash",
		Status:       status,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func TestCreateTipValidation(t *testing.T) {
	svc, db := setupTipServiceTest(t)
	createTipTestUser(t, db, 1, constants.UserStatusActive)
	createTipTestUser(t, db, 2, constants.UserStatusActive)
	createTipTestUser(t, db, 3, constants.UserStatusDisabled)

	// Tipping yourself is rejected.
	_, err := svc.Create(1, CreateTipInput{
		ProviderID:    1,
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: constants.TipMethodCash,
	})
	if !errors.Is(err, ErrTipInvalid) {
		t.Fatalf("want ErrTipInvalid for self tip got %v", err)
	}

	// Non-positive amounts are rejected.
	_, err = svc.Create(1, CreateTipInput{
		ProviderID:    2,
		Amount:        decimal.Zero,
		PaymentMethod: constants.TipMethodCash,
	})
	if !errors.Is(err, ErrTipInvalid) {
		t.Fatalf("want ErrTipInvalid for zero amount got %v", err)
	}

	// Unknown payment methods are rejected.
	_, err = svc.Create(1, CreateTipInput{
		ProviderID:    2,
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: "check",
	})
	if !errors.Is(err, ErrTipInvalid) {
		t.Fatalf("want ErrTipInvalid for bad method got %v", err)
	}

	// Disabled providers cannot receive tips.
	_, err = svc.Create(1, CreateTipInput{
		ProviderID:    3,
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: constants.TipMethodCash,
	})
	if !errors.Is(err, ErrTipInvalid) {
		t.Fatalf("want ErrTipInvalid for disabled provider got %v", err)
	}

	tip, err := svc.Create(1, CreateTipInput{
		ProviderID:    2,
		Amount:        decimal.NewFromFloat(15.5),
		PaymentMethod: constants.TipMethodCreditCard,
		Message:       "great service",
	})
	if err != nil {
		t.Fatalf("create tip failed: %v", err)
	}
	if tip.PaymentStatus != constants.TipStatusPending {
		t.Fatalf("tip status want pending got %s", tip.PaymentStatus)
	}
	if tip.Amount.String() != "15.50" {
		t.Fatalf("amount want 15.50 got %s", tip.Amount.String())
	}
}

func TestTipVisibilityAndUpdateRules(t *testing.T) {
	svc, db := setupTipServiceTest(t)
	createTipTestUser(t, db, 1, constants.UserStatusActive)
	createTipTestUser(t, db, 2, constants.UserStatusActive)
	createTipTestUser(t, db, 3, constants.UserStatusActive)

	tip, err := svc.Create(1, CreateTipInput{
		ProviderID:    2,
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: constants.TipMethodCash,
	})
	if err != nil {
		t.Fatalf("create tip failed: %v", err)
	}

	// Both the tipper and the provider can read it, nobody else.
	if _, err := svc.Get(1, tip.ID); err != nil {
		t.Fatalf("tipper get failed: %v", err)
	}
	if _, err := svc.Get(2, tip.ID); err != nil {
		t.Fatalf("provider get failed: %v", err)
	}
	if _, err := svc.Get(3, tip.ID); !errors.Is(err, ErrTipForbidden) {
		t.Fatalf("want ErrTipForbidden got %v", err)
	}

	// Only the tipper may update.
	newAmount := decimal.NewFromInt(25)
	if _, err := svc.Update(2, tip.ID, UpdateTipInput{Amount: &newAmount}); !errors.Is(err, ErrTipForbidden) {
		t.Fatalf("want ErrTipForbidden got %v", err)
	}
	updated, err := svc.Update(1, tip.ID, UpdateTipInput{Amount: &newAmount})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Amount.String() != "25.00" {
		t.Fatalf("amount want 25.00 got %s", updated.Amount.String())
	}

	// Completed tips cannot be edited or deleted.
	if err := db.Model(&models.Tip{}).
		Where("id = ?", tip.ID).
		Update("payment_status", constants.TipStatusCompleted).Error; err != nil {
		t.Fatalf("force completed failed: %v", err)
	}
	if _, err := svc.Update(1, tip.ID, UpdateTipInput{Amount: &newAmount}); !errors.Is(err, ErrTipNotPending) {
		t.Fatalf("want ErrTipNotPending got %v", err)
	}
	if err := svc.Delete(1, tip.ID); !errors.Is(err, ErrTipNotPending) {
		t.Fatalf("want ErrTipNotPending got %v", err)
	}
}

func TestTipStats(t *testing.T) {
	svc, db := setupTipServiceTest(t)
	createTipTestUser(t, db, 1, constants.UserStatusActive)
	createTipTestUser(t, db, 2, constants.UserStatusActive)

	for i, status := range []string{
		constants.TipStatusCompleted,
		constants.TipStatusCompleted,
		constants.TipStatusPending,
	} {
		tip := models.Tip{
			ProviderID:    2,
			TipperID:      1,
			Amount:        models.NewMoneyFromDecimal(decimal.NewFromInt(int64(10 * (i + 1)))),
			PaymentMethod: constants.TipMethodCash,
			PaymentStatus: status,
		}
		if err := db.Create(&tip).Error; err != nil {
			t.Fatalf("create tip failed: %v", err)
		}
	}

	stats, err := svc.Stats(2)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.ReceivedCount != 2 {
		t.Fatalf("received count want 2 got %d", stats.ReceivedCount)
	}
	if stats.PendingCount != 1 {
		t.Fatalf("pending count want 1 got %d", stats.PendingCount)
	}
	if stats.ReceivedVolume.String() != "30.00" {
		t.Fatalf("received volume want 30.00 got %s", stats.ReceivedVolume.String())
	}
}

func TestListMineSplitsByRole(t *testing.T) {
	svc, db := setupTipServiceTest(t)
	createTipTestUser(t, db, 1, constants.UserStatusActive)
	createTipTestUser(t, db, 2, constants.UserStatusActive)

	if _, err := svc.Create(1, CreateTipInput{
		ProviderID:    2,
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: constants.TipMethodCash,
	}); err != nil {
		t.Fatalf("create tip failed: %v", err)
	}
	if _, err := svc.Create(2, CreateTipInput{
		ProviderID:    1,
		Amount:        decimal.NewFromInt(5),
		PaymentMethod: constants.TipMethodCash,
	}); err != nil {
		t.Fatalf("create reverse tip failed: %v", err)
	}

	given, total, err := svc.ListMine(1, "tipper", repository.TipListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list given failed: %v", err)
	}
	if total != 1 || len(given) != 1 || given[0].TipperID != 1 {
		t.Fatalf("given tips unexpected: total=%d %+v", total, given)
	}

	received, total, err := svc.ListMine(1, "provider", repository.TipListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list received failed: %v", err)
	}
	if total != 1 || len(received) != 1 || received[0].ProviderID != 1 {
		t.Fatalf("received tips unexpected: total=%d %+v", total, received)
	}
}
