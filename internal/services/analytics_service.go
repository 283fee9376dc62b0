package services

import (
	"context"
	"time"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
)

// AnalyticsService assembles the admin dashboard rollups from the
// repositories' aggregation queries.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type analyticsService struct {
	userRepo    interfaces.UserRepository
	vehicleRepo interfaces.VehicleRepository
	bookingRepo interfaces.BookingRepository
	paymentRepo interfaces.PaymentRepository
	logger      *logger.Logger
}

func NewAnalyticsService(
	userRepo interfaces.UserRepository,
	vehicleRepo interfaces.VehicleRepository,
	bookingRepo interfaces.BookingRepository,
	paymentRepo interfaces.PaymentRepository,
	log *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		logger:      log,
	}
}

type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalVehicles int64 `json:"total_vehicles"`
	TotalBookings int64 `json:"total_bookings"`
	TotalPayments int64 `json:"total_payments"`

	BookingsByStatus map[models.BookingStatus]int64 `json:"bookings_by_status"`
	BookingsByHour   []*interfaces.HourlyCount      `json:"bookings_by_hour"`
	PaymentTotals    []*interfaces.PaymentTotals    `json:"payment_totals"`
	DailyRevenue     []*interfaces.DailyRevenue     `json:"daily_revenue"`

	TotalRevenue   float64 `json:"total_revenue"`
	RevenueLast30  float64 `json:"revenue_last_30_days"`
	RefundedAmount float64 `json:"refunded_amount"`
	Currency       string  `json:"currency"`
	GeneratedAt    string  `json:"generated_at"`
}

func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		BookingsByStatus: make(map[models.BookingStatus]int64),
		Currency:         utils.DefaultCurrency,
		GeneratedAt:      time.Now().Format(time.RFC3339),
	}

	var err error
	if stats.TotalUsers, err = s.userRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVehicles, err = s.vehicleRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = s.bookingRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPayments, err = s.paymentRepo.GetTotalCount(ctx); err != nil {
		return nil, err
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	} {
		count, err := s.bookingRepo.GetCountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.BookingsByStatus[status] = count
	}

	totals, err := s.paymentRepo.GetTotalsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.PaymentTotals = totals

	for _, t := range totals {
		switch t.Status {
		case models.PaymentStatusPaid:
			stats.TotalRevenue += t.Amount
		case models.PaymentStatusRefunded:
			stats.RefundedAmount += t.Amount
		}
	}

	since := time.Now().AddDate(0, 0, -30)
	if stats.RevenueLast30, err = s.paymentRepo.GetRevenueSince(ctx, since); err != nil {
		return nil, err
	}
	if stats.DailyRevenue, err = s.paymentRepo.GetDailyRevenue(ctx, since); err != nil {
		return nil, err
	}
	if stats.BookingsByHour, err = s.bookingRepo.GetHourlyCounts(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
