package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/pricing"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/payment"
)

// PaymentService drives checkout. Order creation is gated on the quote
// session's submission check and always prices from the session store, so
// a client cannot submit an amount of its own choosing.
type PaymentService interface {
	CreateOrder(ctx context.Context, userID primitive.ObjectID, request *CreateOrderRequest) (*CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID primitive.ObjectID, request *VerifyPaymentRequest) (*models.Booking, error)
	ListPayments(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error)
	MyPayments(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error)
}

type paymentService struct {
	provider    payment.Provider
	quotes      QuoteService
	bookingRepo interfaces.BookingRepository
	paymentRepo interfaces.PaymentRepository
	vehicleRepo interfaces.VehicleRepository
	currency    string
	logger      *logger.Logger
}

func NewPaymentService(
	provider payment.Provider,
	quotes QuoteService,
	bookingRepo interfaces.BookingRepository,
	paymentRepo interfaces.PaymentRepository,
	vehicleRepo interfaces.VehicleRepository,
	currency string,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		provider:    provider,
		quotes:      quotes,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		vehicleRepo: vehicleRepo,
		currency:    currency,
		logger:      log,
	}
}

type CreateOrderRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	VehicleID   string `json:"vehicle_id" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
}

type CreateOrderResponse struct {
	BookingID string  `json:"booking_id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Provider  string  `json:"provider"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature"`
}

func (s *paymentService) CreateOrder(ctx context.Context, userID primitive.ObjectID, request *CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	store, ok := s.quotes.Session(request.SessionID)
	if !ok {
		return nil, errors.New(utils.ErrQuoteNotFound)
	}
	if !store.Has(request.VehicleID) {
		return nil, fmt.Errorf("vehicle is not part of this quote")
	}

	if verdict := store.ValidateForSubmission(request.VehicleID); !verdict.Valid {
		return nil, fmt.Errorf("selection is not submittable: %s", verdict.Reason)
	}

	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Bookable() {
		return nil, errors.New(utils.ErrVehicleUnavailable)
	}

	// The session store is the authoritative price source.
	sel := store.GetSelection(request.VehicleID)
	fare := store.GetPrice(request.VehicleID)
	if fare.Amount < utils.MinOrderAmount {
		return nil, fmt.Errorf("fare amount %.2f is below the gateway minimum", fare.Amount)
	}

	order, err := s.provider.CreateOrder(ctx, &payment.OrderRequest{
		Amount:   fare.Amount,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("booking-%s-%s", userID.Hex(), request.VehicleID),
		Notes: map[string]interface{}{
			"vehicle_id": request.VehicleID,
			"session_id": request.SessionID,
		},
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to create gateway order")
		return nil, errors.New(utils.ErrPaymentFailed)
	}

	booking := &models.Booking{
		UserID:      userID,
		VehicleID:   vehicleID,
		Origin:      request.Origin,
		Destination: request.Destination,
		DistanceKm:  store.Trip().DistanceKm,
		IsRoundTrip: sel.IsRoundTrip,
		BookingType: bookingType(sel),
		Amount:      fare.Amount,
		Currency:    s.currency,
		FareBasis:   string(fare.Basis),
		OrderID:     order.OrderID,
		Status:      models.BookingStatusPending,
	}
	if !sel.StartAt.IsZero() {
		start := sel.StartAt
		booking.StartAt = &start
	}
	if !sel.EndAt.IsZero() {
		end := sel.EndAt
		booking.EndAt = &end
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	pay := &models.Payment{
		BookingID: booking.ID,
		UserID:    userID,
		VehicleID: vehicleID,
		Provider:  s.provider.Name(),
		OrderID:   order.OrderID,
		Amount:    fare.Amount,
		Currency:  s.currency,
		Status:    models.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, pay); err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		BookingID: booking.ID.Hex(),
		OrderID:   order.OrderID,
		Amount:    fare.Amount,
		Currency:  s.currency,
		Provider:  s.provider.Name(),
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, request *VerifyPaymentRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	booking, err := s.bookingRepo.GetByOrderID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errors.New(utils.ErrForbidden)
	}

	pay, err := s.paymentRepo.GetByOrderID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if pay.Status == models.PaymentStatusPaid {
		return booking, nil
	}

	if err := s.provider.VerifyPayment(ctx, &payment.VerificationRequest{
		OrderID:   request.OrderID,
		PaymentID: request.PaymentID,
		Signature: request.Signature,
	}); err != nil {
		_ = s.paymentRepo.Update(ctx, pay.ID, map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": err.Error(),
		})
		return nil, errors.New(utils.ErrPaymentFailed)
	}

	now := time.Now()
	if err := s.paymentRepo.Update(ctx, pay.ID, map[string]interface{}{
		"status":     models.PaymentStatusPaid,
		"payment_id": request.PaymentID,
		"signature":  request.Signature,
		"paid_at":    now,
	}); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": now,
	}); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusConfirmed
	booking.ConfirmedAt = &now

	if err := s.vehicleRepo.SetBooked(ctx, booking.VehicleID, true); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Error("Failed to mark vehicle booked")
	}

	// The captured selection is spent; drop it so a fresh quote starts
	// from defaults.
	if request.SessionID != "" {
		_ = s.quotes.DiscardSelection(ctx, request.SessionID, booking.VehicleID.Hex())
	}

	s.logger.LogPaymentEvent(pay.ID, utils.EventPaymentProcessed, pay.Amount, pay.Currency)
	s.logger.LogBookingEvent(booking.ID, utils.EventBookingConfirmed, map[string]interface{}{
		"vehicle_id": booking.VehicleID.Hex(),
		"amount":     booking.Amount,
	})

	return booking, nil
}

func (s *paymentService) ListPayments(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return payments, utils.CreatePaginationMeta(params, total), nil
}

func (s *paymentService) MyPayments(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error) {
	payments, total, err := s.paymentRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return payments, utils.CreatePaginationMeta(params, total), nil
}

func bookingType(sel pricing.Selection) models.BookingType {
	if sel.Scheduled() {
		return models.BookingTypeScheduled
	}
	return models.BookingTypeImmediate
}
