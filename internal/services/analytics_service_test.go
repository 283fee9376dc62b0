package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
)

func TestDashboardRollups(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepo(
		&models.User{Phone: "+919800000001", Status: models.UserStatusActive},
		&models.User{Phone: "+919800000002", Status: models.UserStatusPending},
	)
	vehicleRepo := newFakeVehicleRepo(bookableSedan(12, 200), bookableSedan(18, 300))
	bookingRepo := newFakeBookingRepo()
	paymentRepo := newFakePaymentRepo()

	userID := primitive.NewObjectID()
	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
	} {
		if err := bookingRepo.Create(ctx, &models.Booking{UserID: userID, Status: status}); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	recent := time.Now().Add(-24 * time.Hour)
	old := time.Now().AddDate(0, 0, -45)
	seedPayments := []*models.Payment{
		{UserID: userID, Status: models.PaymentStatusPaid, Amount: 1440, PaidAt: &recent},
		{UserID: userID, Status: models.PaymentStatusPaid, Amount: 2880, PaidAt: &old},
		{UserID: userID, Status: models.PaymentStatusRefunded, Amount: 500},
		{UserID: userID, Status: models.PaymentStatusFailed, Amount: 999},
	}
	for _, p := range seedPayments {
		if err := paymentRepo.Create(ctx, p); err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	svc := NewAnalyticsService(userRepo, vehicleRepo, bookingRepo, paymentRepo, testLogger())
	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.TotalUsers != 2 || stats.TotalVehicles != 2 || stats.TotalBookings != 3 || stats.TotalPayments != 4 {
		t.Errorf("counts = %d users %d vehicles %d bookings %d payments",
			stats.TotalUsers, stats.TotalVehicles, stats.TotalBookings, stats.TotalPayments)
	}

	if stats.BookingsByStatus[models.BookingStatusConfirmed] != 2 {
		t.Errorf("confirmed bookings = %d, want 2", stats.BookingsByStatus[models.BookingStatusConfirmed])
	}
	if stats.BookingsByStatus[models.BookingStatusCompleted] != 0 {
		t.Errorf("completed bookings = %d, want 0", stats.BookingsByStatus[models.BookingStatusCompleted])
	}

	// Revenue counts paid only; refunds and failures stay out of it.
	if stats.TotalRevenue != 4320 {
		t.Errorf("total revenue = %v, want 4320", stats.TotalRevenue)
	}
	if stats.RefundedAmount != 500 {
		t.Errorf("refunded amount = %v, want 500", stats.RefundedAmount)
	}
	if stats.RevenueLast30 != 1440 {
		t.Errorf("30 day revenue = %v, want 1440", stats.RevenueLast30)
	}

	// Only the recent paid payment falls inside the daily series window.
	if len(stats.DailyRevenue) != 1 {
		t.Fatalf("daily revenue buckets = %d, want 1", len(stats.DailyRevenue))
	}
	day := stats.DailyRevenue[0]
	if day.Date != recent.Format("2006-01-02") || day.Amount != 1440 || day.Count != 1 {
		t.Errorf("daily revenue bucket = %+v", day)
	}

	var hourTotal int64
	for _, h := range stats.BookingsByHour {
		hourTotal += h.Count
	}
	if hourTotal != 3 {
		t.Errorf("hourly histogram covers %d bookings, want 3", hourTotal)
	}
}
