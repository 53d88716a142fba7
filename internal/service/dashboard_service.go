package service

import (
	"time"

	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"
)

// DashboardService builds the console overview and trends.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// DashboardOverview is the console landing aggregate.
type DashboardOverview struct {
	StaffTotal           int64        `json:"staff_total"`
	StaffActiveToday     int64        `json:"staff_active_today"`
	TipsToday            int64        `json:"tips_today"`
	TipsCompletedToday   int64        `json:"tips_completed_today"`
	TipVolumeToday       models.Money `json:"tip_volume_today"`
	SessionsAwaiting     int64        `json:"sessions_awaiting"`
	EnrollmentsTotal     int64        `json:"enrollments_total"`
	EnrollmentsCompleted int64        `json:"enrollments_completed"`
	UpcomingShifts       int64        `json:"upcoming_shifts"`
}

// TipTrendPoint is one day of tip activity.
type TipTrendPoint struct {
	Day             string       `json:"day"`
	TipsTotal       int64        `json:"tips_total"`
	TipsCompleted   int64        `json:"tips_completed"`
	CompletedVolume models.Money `json:"completed_volume"`
}

// GetOverview collects today's console overview.
func (s *DashboardService) GetOverview() (*DashboardOverview, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	row, err := s.dashboardRepo.GetOverview(todayStart, todayEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		StaffTotal:           row.StaffTotal,
		StaffActiveToday:     row.StaffActiveToday,
		TipsToday:            row.TipsTotal,
		TipsCompletedToday:   row.TipsCompleted,
		TipVolumeToday:       models.NewMoneyFromDecimal(row.TipsCompletedVolume),
		SessionsAwaiting:     row.SessionsAwaiting,
		EnrollmentsTotal:     row.EnrollmentsTotal,
		EnrollmentsCompleted: row.EnrollmentsCompleted,
		UpcomingShifts:       row.UpcomingShifts,
	}, nil
}

// GetTipTrends collects daily tip activity for the last N days.
func (s *DashboardService) GetTipTrends(days int) ([]TipTrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	now := time.Now()
	endAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	startAt := endAt.AddDate(0, 0, -days)

	rows, err := s.dashboardRepo.GetTipTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}

	points := make([]TipTrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TipTrendPoint{
			Day:             row.Day,
			TipsTotal:       row.TipsTotal,
			TipsCompleted:   row.TipsCompleted,
			CompletedVolume: models.NewMoneyFromDecimal(row.CompletedVolume),
		})
	}
	return points, nil
}
