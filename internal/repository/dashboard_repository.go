package repository

import (
	"fmt"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// sumRow receives a decimal SUM aggregate; scanning through a struct
// field keeps the value out of float64.
type sumRow struct {
	Total decimal.Decimal
}

// DashboardRepository aggregates console statistics.
// Pure aggregation; no business rules live here.
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetTipTrends(startAt, endAt time.Time) ([]DashboardTipTrendRow, error)
	GetProviderTipStats(providerID uint, todayStart time.Time) (ProviderTipStatsRow, error)
}

// DashboardOverviewRow is the raw overview aggregate. Money sums stay
// decimal end to end; going through float64 would reintroduce rounding.
type DashboardOverviewRow struct {
	StaffTotal           int64
	StaffActiveToday     int64
	TipsTotal            int64
	TipsCompleted        int64
	TipsCompletedVolume  decimal.Decimal
	SessionsAwaiting     int64
	EnrollmentsTotal     int64
	EnrollmentsCompleted int64
	UpcomingShifts       int64
}

// DashboardTipTrendRow is one day of tip activity.
type DashboardTipTrendRow struct {
	Day             string
	TipsTotal       int64
	TipsCompleted   int64
	CompletedVolume decimal.Decimal
}

// ProviderTipStatsRow is the per-provider gratuity aggregate.
type ProviderTipStatsRow struct {
	ReceivedCount  int64
	ReceivedVolume decimal.Decimal
	PendingCount   int64
	TodayCount     int64
	TodayVolume    decimal.Decimal
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview collects the console overview aggregate.
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.User{}).
		Where("status = ?", constants.UserStatusActive).
		Count(&result.StaffTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("last_login_at >= ? AND last_login_at < ?", startAt, endAt).
		Count(&result.StaffActiveToday).Error; err != nil {
		return result, err
	}

	tipBase := func() *gorm.DB {
		return r.db.Model(&models.Tip{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}
	if err := tipBase().Count(&result.TipsTotal).Error; err != nil {
		return result, err
	}
	if err := tipBase().Where("payment_status = ?", constants.TipStatusCompleted).
		Count(&result.TipsCompleted).Error; err != nil {
		return result, err
	}
	var completedVolume sumRow
	if err := tipBase().Where("payment_status = ?", constants.TipStatusCompleted).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&completedVolume).Error; err != nil {
		return result, err
	}
	result.TipsCompletedVolume = completedVolume.Total

	if err := r.db.Model(&models.PaymentSession{}).
		Where("status = ?", constants.SessionStatusAwaitingPayment).
		Count(&result.SessionsAwaiting).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Enrollment{}).
		Count(&result.EnrollmentsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Enrollment{}).
		Where("status = ?", constants.EnrollmentStatusCompleted).
		Count(&result.EnrollmentsCompleted).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Shift{}).
		Where("is_published = ? AND starts_at >= ?", true, endAt).
		Count(&result.UpcomingShifts).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetTipTrends collects daily tip counts and completed volume.
func (r *GormDashboardRepository) GetTipTrends(startAt, endAt time.Time) ([]DashboardTipTrendRow, error) {
	type totalRow struct {
		Day   string
		Total int64
	}
	type volumeRow struct {
		Day   string
		Total decimal.Decimal
	}

	dayExpr := "CAST(date(created_at) AS TEXT)"

	var totals []totalRow
	if err := r.db.Model(&models.Tip{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	var completeds []totalRow
	if err := r.db.Model(&models.Tip{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ? AND payment_status = ?", startAt, endAt, constants.TipStatusCompleted).
		Group(dayExpr).
		Order("day asc").
		Scan(&completeds).Error; err != nil {
		return nil, err
	}

	var volumes []volumeRow
	if err := r.db.Model(&models.Tip{}).
		Select(fmt.Sprintf("%s as day, COALESCE(SUM(amount), 0) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ? AND payment_status = ?", startAt, endAt, constants.TipStatusCompleted).
		Group(dayExpr).
		Order("day asc").
		Scan(&volumes).Error; err != nil {
		return nil, err
	}

	completedMap := make(map[string]int64, len(completeds))
	for _, item := range completeds {
		completedMap[item.Day] = item.Total
	}
	volumeMap := make(map[string]decimal.Decimal, len(volumes))
	for _, item := range volumes {
		volumeMap[item.Day] = item.Total
	}

	result := make([]DashboardTipTrendRow, 0, len(totals))
	for _, item := range totals {
		result = append(result, DashboardTipTrendRow{
			Day:             item.Day,
			TipsTotal:       item.Total,
			TipsCompleted:   completedMap[item.Day],
			CompletedVolume: volumeMap[item.Day],
		})
	}
	return result, nil
}

// GetProviderTipStats collects a provider's gratuity totals.
func (r *GormDashboardRepository) GetProviderTipStats(providerID uint, todayStart time.Time) (ProviderTipStatsRow, error) {
	result := ProviderTipStatsRow{}

	base := func() *gorm.DB {
		return r.db.Model(&models.Tip{}).Where("provider_id = ?", providerID)
	}

	if err := base().Where("payment_status = ?", constants.TipStatusCompleted).
		Count(&result.ReceivedCount).Error; err != nil {
		return result, err
	}
	var receivedVolume sumRow
	if err := base().Where("payment_status = ?", constants.TipStatusCompleted).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&receivedVolume).Error; err != nil {
		return result, err
	}
	result.ReceivedVolume = receivedVolume.Total
	if err := base().Where("payment_status = ?", constants.TipStatusPending).
		Count(&result.PendingCount).Error; err != nil {
		return result, err
	}
	if err := base().Where("payment_status = ? AND created_at >= ?", constants.TipStatusCompleted, todayStart).
		Count(&result.TodayCount).Error; err != nil {
		return result, err
	}
	var todayVolume sumRow
	if err := base().Where("payment_status = ? AND created_at >= ?", constants.TipStatusCompleted, todayStart).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&todayVolume).Error; err != nil {
		return result, err
	}
	result.TodayVolume = todayVolume.Total

	return result, nil
}
