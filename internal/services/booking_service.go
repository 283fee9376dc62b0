package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/payment"
)

type BookingService interface {
	Get(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error)
	MyBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, *utils.PaginationMeta, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, *utils.PaginationMeta, error)

	Cancel(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error)
	CancelByVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Booking, error)
}

type bookingService struct {
	provider    payment.Provider
	bookingRepo interfaces.BookingRepository
	paymentRepo interfaces.PaymentRepository
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewBookingService(
	provider payment.Provider,
	bookingRepo interfaces.BookingRepository,
	paymentRepo interfaces.PaymentRepository,
	vehicleRepo interfaces.VehicleRepository,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		provider:    provider,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		vehicleRepo: vehicleRepo,
		logger:      log,
	}
}

func (s *bookingService) Get(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id")
	}

	booking, err := s.bookingRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errors.New(utils.ErrForbidden)
	}

	return booking, nil
}

func (s *bookingService) MyBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, *utils.PaginationMeta, error) {
	bookings, total, err := s.bookingRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return bookings, utils.CreatePaginationMeta(params, total), nil
}

func (s *bookingService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, *utils.PaginationMeta, error) {
	bookings, total, err := s.bookingRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return bookings, utils.CreatePaginationMeta(params, total), nil
}

func (s *bookingService) Cancel(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id")
	}

	booking, err := s.bookingRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errors.New(utils.ErrForbidden)
	}

	return s.cancel(ctx, booking)
}

// CancelByVehicle resolves the caller's live booking on a vehicle and
// cancels it. The fleet page only knows vehicle ids.
func (s *bookingService) CancelByVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id")
	}

	booking, err := s.bookingRepo.GetActiveByUserAndVehicle(ctx, userID, oid)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, booking)
}

func (s *bookingService) cancel(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	switch booking.Status {
	case models.BookingStatusCancelled:
		return booking, nil
	case models.BookingStatusCompleted:
		return nil, fmt.Errorf("completed bookings cannot be cancelled")
	}

	if booking.Status == models.BookingStatusConfirmed {
		if err := s.refund(ctx, booking); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
	}); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now

	if err := s.vehicleRepo.SetBooked(ctx, booking.VehicleID, false); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Error("Failed to release vehicle")
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCancelled, map[string]interface{}{
		"vehicle_id": booking.VehicleID.Hex(),
	})

	return booking, nil
}

func (s *bookingService) refund(ctx context.Context, booking *models.Booking) error {
	pay, err := s.paymentRepo.GetByOrderID(ctx, booking.OrderID)
	if err != nil {
		return err
	}
	if pay.Status != models.PaymentStatusPaid {
		return nil
	}

	refund, err := s.provider.Refund(ctx, &payment.RefundRequest{
		PaymentID: pay.PaymentID,
		Amount:    pay.Amount,
		Reason:    "booking cancelled",
	})
	if err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Error("Refund failed")
		return fmt.Errorf("refund failed: %w", err)
	}

	now := time.Now()
	if err := s.paymentRepo.Update(ctx, pay.ID, map[string]interface{}{
		"status":        models.PaymentStatusRefunded,
		"refund_id":     refund.RefundID,
		"refund_amount": refund.Amount,
		"refunded_at":   now,
	}); err != nil {
		return err
	}

	s.logger.LogPaymentEvent(pay.ID, utils.EventPaymentRefunded, refund.Amount, pay.Currency)
	return nil
}
