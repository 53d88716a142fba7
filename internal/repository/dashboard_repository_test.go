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

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return NewDashboardRepository(db), db
}

func createDashboardTip(t *testing.T, db *gorm.DB, providerID uint, amount string, status string) {
	t.Helper()
	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount failed: %v", err)
	}
	tip := models.Tip{
		ProviderID:    providerID,
		TipperID:      1,
		Amount:        models.NewMoneyFromDecimal(value),
		PaymentMethod: constants.TipMethodCash,
		PaymentStatus: status,
	}
	if err := db.Create(&tip).Error; err != nil {
		t.Fatalf("create tip failed: %v", err)
	}
}

func TestGetProviderTipStatsKeepsDecimalSums(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	todayStart := time.Now().Add(-time.Hour)

	createDashboardTip(t, db, 2, "0.25", constants.TipStatusCompleted)
	createDashboardTip(t, db, 2, "0.50", constants.TipStatusCompleted)
	createDashboardTip(t, db, 2, "5.00", constants.TipStatusPending)
	createDashboardTip(t, db, 3, "99.99", constants.TipStatusCompleted)

	row, err := repo.GetProviderTipStats(2, todayStart)
	if err != nil {
		t.Fatalf("provider tip stats failed: %v", err)
	}
	if row.ReceivedCount != 2 {
		t.Fatalf("received count want 2 got %d", row.ReceivedCount)
	}
	if row.PendingCount != 1 {
		t.Fatalf("pending count want 1 got %d", row.PendingCount)
	}
	if !row.ReceivedVolume.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("received volume want 0.75 got %s", row.ReceivedVolume.String())
	}
	if !row.TodayVolume.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("today volume want 0.75 got %s", row.TodayVolume.String())
	}
}

func TestGetProviderTipStatsEmpty(t *testing.T) {
	repo, _ := setupDashboardRepositoryTest(t)

	row, err := repo.GetProviderTipStats(7, time.Now())
	if err != nil {
		t.Fatalf("provider tip stats failed: %v", err)
	}
	if row.ReceivedCount != 0 || row.PendingCount != 0 {
		t.Fatalf("counts want 0 got %d/%d", row.ReceivedCount, row.PendingCount)
	}
	if !row.ReceivedVolume.IsZero() {
		t.Fatalf("received volume want 0 got %s", row.ReceivedVolume.String())
	}
}
