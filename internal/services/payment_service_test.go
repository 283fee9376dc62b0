package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/pricing"
	"rideinbls/internal/utils"
)

type checkoutFixture struct {
	quotes      QuoteService
	payments    PaymentService
	provider    *fakePaymentProvider
	vehicleRepo *fakeVehicleRepo
	bookingRepo *fakeBookingRepo
	paymentRepo *fakePaymentRepo

	userID    primitive.ObjectID
	sessionID string
	vehicleID string
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	vehicleRepo := newFakeVehicleRepo(bookableSedan(12, 200))
	bookingRepo := newFakeBookingRepo()
	paymentRepo := newFakePaymentRepo()
	provider := &fakePaymentProvider{}

	sessions := pricing.NewSessionManager(utils.QuoteSessionTTL)
	quotes := NewQuoteService(sessions, vehicleRepo, &fakeMapsProvider{distanceKm: 120}, testLogger())
	payments := NewPaymentService(provider, quotes, bookingRepo, paymentRepo, vehicleRepo, utils.DefaultCurrency, testLogger())

	resp, err := quotes.CreateQuote(context.Background(), &QuoteRequest{Origin: "Kolkata", Destination: "Durgapur"})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	return &checkoutFixture{
		quotes:      quotes,
		payments:    payments,
		provider:    provider,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		userID:      primitive.NewObjectID(),
		sessionID:   resp.SessionID,
		vehicleID:   resp.Vehicles[0].VehicleID,
	}
}

func (f *checkoutFixture) createOrder(t *testing.T) *CreateOrderResponse {
	t.Helper()
	resp, err := f.payments.CreateOrder(context.Background(), f.userID, &CreateOrderRequest{
		SessionID:   f.sessionID,
		VehicleID:   f.vehicleID,
		Origin:      "Kolkata",
		Destination: "Durgapur",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return resp
}

func TestCreateOrderPricesFromSession(t *testing.T) {
	f := newCheckoutFixture(t)

	// 120 km at 12/km; the request carries no amount at all.
	resp := f.createOrder(t)
	if resp.Amount != 1440.00 {
		t.Errorf("order amount = %v, want 1440.00", resp.Amount)
	}
	if resp.Currency != utils.DefaultCurrency {
		t.Errorf("currency = %q, want %q", resp.Currency, utils.DefaultCurrency)
	}
	if resp.OrderID == "" || resp.BookingID == "" {
		t.Fatalf("order response missing ids: %+v", resp)
	}

	booking, err := f.bookingRepo.GetByOrderID(context.Background(), resp.OrderID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("booking status = %q, want pending", booking.Status)
	}
	if booking.Amount != 1440.00 || booking.FareBasis != string(pricing.BasisDistance) {
		t.Errorf("booking fare = %v %q, want 1440.00 distance", booking.Amount, booking.FareBasis)
	}
	if booking.BookingType != models.BookingTypeImmediate {
		t.Errorf("booking type = %q, want immediate", booking.BookingType)
	}

	pay, err := f.paymentRepo.GetByOrderID(context.Background(), resp.OrderID)
	if err != nil {
		t.Fatalf("payment not persisted: %v", err)
	}
	if pay.Status != models.PaymentStatusCreated || pay.Amount != 1440.00 {
		t.Errorf("payment record = %q %v, want created 1440.00", pay.Status, pay.Amount)
	}
}

func TestCreateOrderRepricesAfterEdit(t *testing.T) {
	f := newCheckoutFixture(t)

	if _, err := f.quotes.UpdateSelection(context.Background(), f.sessionID, f.vehicleID, &SelectionUpdateRequest{
		IsRoundTrip: truePtr(),
	}); err != nil {
		t.Fatalf("UpdateSelection: %v", err)
	}

	resp := f.createOrder(t)
	if resp.Amount != 2880.00 {
		t.Errorf("round-trip order amount = %v, want 2880.00", resp.Amount)
	}
}

func TestCreateOrderBlocksUnsubmittableSelection(t *testing.T) {
	f := newCheckoutFixture(t)

	// A half-open window is not submittable.
	if _, err := f.quotes.UpdateSelection(context.Background(), f.sessionID, f.vehicleID, &SelectionUpdateRequest{
		StartAt: strPtr("2026-09-01T10:00"),
	}); err != nil {
		t.Fatalf("UpdateSelection: %v", err)
	}

	_, err := f.payments.CreateOrder(context.Background(), f.userID, &CreateOrderRequest{
		SessionID:   f.sessionID,
		VehicleID:   f.vehicleID,
		Origin:      "Kolkata",
		Destination: "Durgapur",
	})
	if err == nil {
		t.Fatal("CreateOrder should refuse an unsubmittable selection")
	}
	if f.provider.orders != 0 {
		t.Error("gateway order created despite failed submission check")
	}
}

func TestCreateOrderUnknownSessionAndVehicle(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.payments.CreateOrder(context.Background(), f.userID, &CreateOrderRequest{
		SessionID:   "nope",
		VehicleID:   f.vehicleID,
		Origin:      "A",
		Destination: "B",
	})
	if err == nil || err.Error() != utils.ErrQuoteNotFound {
		t.Errorf("unknown session error = %v, want %q", err, utils.ErrQuoteNotFound)
	}

	_, err = f.payments.CreateOrder(context.Background(), f.userID, &CreateOrderRequest{
		SessionID:   f.sessionID,
		VehicleID:   primitive.NewObjectID().Hex(),
		Origin:      "A",
		Destination: "B",
	})
	if err == nil {
		t.Error("vehicle outside the quote should be rejected")
	}
}

func TestVerifyPaymentConfirmsBooking(t *testing.T) {
	f := newCheckoutFixture(t)

	// Flag set before checkout so the post-capture discard is observable.
	if _, err := f.quotes.UpdateSelection(context.Background(), f.sessionID, f.vehicleID, &SelectionUpdateRequest{
		IsRoundTrip: truePtr(),
	}); err != nil {
		t.Fatalf("UpdateSelection: %v", err)
	}
	order := f.createOrder(t)

	booking, err := f.payments.VerifyPayment(context.Background(), f.userID, &VerifyPaymentRequest{
		SessionID: f.sessionID,
		OrderID:   order.OrderID,
		PaymentID: "pay_123",
		Signature: "sig",
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if booking.Status != models.BookingStatusConfirmed || booking.ConfirmedAt == nil {
		t.Errorf("booking after verify = %q, want confirmed", booking.Status)
	}

	pay, err := f.paymentRepo.GetByOrderID(context.Background(), order.OrderID)
	if err != nil {
		t.Fatalf("payment lookup: %v", err)
	}
	if pay.Status != models.PaymentStatusPaid || pay.PaymentID != "pay_123" || pay.PaidAt == nil {
		t.Errorf("payment after verify = %+v, want paid pay_123", pay)
	}

	vehicle, err := f.vehicleRepo.GetByID(context.Background(), booking.VehicleID)
	if err != nil {
		t.Fatalf("vehicle lookup: %v", err)
	}
	if !vehicle.IsBooked {
		t.Error("vehicle not marked booked after capture")
	}

	// The captured selection is spent.
	sel, err := f.quotes.GetSelection(context.Background(), f.sessionID, f.vehicleID)
	if err != nil {
		t.Fatalf("GetSelection: %v", err)
	}
	if sel.Selection.IsRoundTrip {
		t.Error("selection survived payment capture")
	}
}

func TestVerifyPaymentRejectsOtherUser(t *testing.T) {
	f := newCheckoutFixture(t)
	order := f.createOrder(t)

	_, err := f.payments.VerifyPayment(context.Background(), primitive.NewObjectID(), &VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_123",
	})
	if err == nil || err.Error() != utils.ErrForbidden {
		t.Errorf("foreign verify error = %v, want %q", err, utils.ErrForbidden)
	}
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	f := newCheckoutFixture(t)
	order := f.createOrder(t)
	f.provider.verifyErr = errors.New("signature mismatch")

	_, err := f.payments.VerifyPayment(context.Background(), f.userID, &VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_123",
		Signature: "forged",
	})
	if err == nil {
		t.Fatal("forged signature should fail verification")
	}

	pay, lookupErr := f.paymentRepo.GetByOrderID(context.Background(), order.OrderID)
	if lookupErr != nil {
		t.Fatalf("payment lookup: %v", lookupErr)
	}
	if pay.Status != models.PaymentStatusFailed || pay.FailureReason == "" {
		t.Errorf("payment after failed verify = %q %q, want failed with reason", pay.Status, pay.FailureReason)
	}

	booking, lookupErr := f.bookingRepo.GetByOrderID(context.Background(), order.OrderID)
	if lookupErr != nil {
		t.Fatalf("booking lookup: %v", lookupErr)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("booking after failed verify = %q, want pending", booking.Status)
	}
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	f := newCheckoutFixture(t)
	order := f.createOrder(t)

	req := &VerifyPaymentRequest{OrderID: order.OrderID, PaymentID: "pay_123", Signature: "sig"}
	if _, err := f.payments.VerifyPayment(context.Background(), f.userID, req); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// A retry after capture must not hit the gateway again.
	f.provider.verifyErr = errors.New("signature mismatch")
	booking, err := f.payments.VerifyPayment(context.Background(), f.userID, req)
	if err != nil {
		t.Fatalf("retried verify: %v", err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("retried verify booking = %q, want confirmed", booking.Status)
	}
}
