package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/maps"
	"rideinbls/pkg/payment"
	"rideinbls/pkg/sms"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	log.SetOutput(io.Discard)
	return log
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == user.Phone {
			return errors.New(utils.ErrUserExists)
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New(utils.ErrUserNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, errors.New(utils.ErrUserNotFound)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New(utils.ErrUserNotFound)
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New(utils.ErrUserNotFound)
	}
	if status, ok := updates["status"].(models.UserStatus); ok {
		u.Status = status
	}
	if verified, ok := updates["is_phone_verified"].(bool); ok {
		u.IsPhoneVerified = verified
	}
	if password, ok := updates["password"].(string); ok {
		u.Password = password
	}
	if at, ok := updates["last_login_at"].(time.Time); ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) GetTotalCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// fakeVehicleRepo is an in-memory VehicleRepository.
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo(vehicles ...*models.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
	for _, v := range vehicles {
		if v.ID.IsZero() {
			v.ID = primitive.NewObjectID()
		}
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, errors.New(utils.ErrVehicleNotFound)
	}
	return v, nil
}

func (r *fakeVehicleRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, id := range ids {
		if v, err := r.GetByID(ctx, id); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) GetByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return nil, errors.New(utils.ErrVehicleNotFound)
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return errors.New(utils.ErrVehicleNotFound)
	}
	if booked, ok := updates["is_booked"].(bool); ok {
		v.IsBooked = booked
	}
	if available, ok := updates["available"].(bool); ok {
		v.Available = available
	}
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) ListBookable(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if !v.Bookable() {
			continue
		}
		if vehicleType != "" && v.Type != vehicleType {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	return r.Update(ctx, id, map[string]interface{}{"is_booked": booked})
}

func (r *fakeVehicleRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	return r.Update(ctx, id, map[string]interface{}{"available": available})
}

func (r *fakeVehicleRepo) GetTotalCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.vehicles)), nil
}

func (r *fakeVehicleRepo) GetCountByType(ctx context.Context, vehicleType models.VehicleType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.vehicles {
		if v.Type == vehicleType {
			n++
		}
	}
	return n, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New(utils.ErrBookingNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.OrderID == orderID {
			return b, nil
		}
	}
	return nil, errors.New(utils.ErrBookingNotFound)
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New(utils.ErrBookingNotFound)
	}
	if status, ok := updates["status"].(models.BookingStatus); ok {
		b.Status = status
	}
	if at, ok := updates["confirmed_at"].(time.Time); ok {
		b.ConfirmedAt = &at
	}
	if at, ok := updates["cancelled_at"].(time.Time); ok {
		b.CancelledAt = &at
	}
	return nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) GetActiveByUserAndVehicle(ctx context.Context, userID, vehicleID primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.VehicleID == vehicleID &&
			(b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed) {
			return b, nil
		}
	}
	return nil, errors.New(utils.ErrBookingNotFound)
}

func (r *fakeBookingRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) GetTotalCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) GetHourlyCounts(ctx context.Context) ([]*interfaces.HourlyCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byHour := make(map[int32]int64)
	for _, b := range r.bookings {
		byHour[int32(b.CreatedAt.Hour())]++
	}
	var out []*interfaces.HourlyCount
	for hour, count := range byHour {
		out = append(out, &interfaces.HourlyCount{Hour: hour, Count: count})
	}
	return out, nil
}

func (r *fakeBookingRepo) GetCountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

// fakePaymentRepo is an in-memory PaymentRepository.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[primitive.ObjectID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[primitive.ObjectID]*models.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	if payment.Status == "" {
		payment.Status = models.PaymentStatusCreated
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment not found")
	}
	return p, nil
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("payment not found")
}

func (r *fakePaymentRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return fmt.Errorf("payment not found")
	}
	if status, ok := updates["status"].(models.PaymentStatus); ok {
		p.Status = status
	}
	if paymentID, ok := updates["payment_id"].(string); ok {
		p.PaymentID = paymentID
	}
	if signature, ok := updates["signature"].(string); ok {
		p.Signature = signature
	}
	if reason, ok := updates["failure_reason"].(string); ok {
		p.FailureReason = reason
	}
	if refundID, ok := updates["refund_id"].(string); ok {
		p.RefundID = refundID
	}
	if amount, ok := updates["refund_amount"].(float64); ok {
		p.RefundAmount = amount
	}
	if at, ok := updates["paid_at"].(time.Time); ok {
		p.PaidAt = &at
	}
	if at, ok := updates["refunded_at"].(time.Time); ok {
		p.RefundedAt = &at
	}
	return nil
}

func (r *fakePaymentRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) GetTotalsByStatus(ctx context.Context) ([]*interfaces.PaymentTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byStatus := make(map[models.PaymentStatus]*interfaces.PaymentTotals)
	for _, p := range r.payments {
		t, ok := byStatus[p.Status]
		if !ok {
			t = &interfaces.PaymentTotals{Status: p.Status}
			byStatus[p.Status] = t
		}
		t.Count++
		t.Amount += p.Amount
	}
	var out []*interfaces.PaymentTotals
	for _, t := range byStatus {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakePaymentRepo) GetRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, p := range r.payments {
		if p.Status == models.PaymentStatusPaid && p.PaidAt != nil && p.PaidAt.After(since) {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *fakePaymentRepo) GetDailyRevenue(ctx context.Context, since time.Time) ([]*interfaces.DailyRevenue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay := make(map[string]*interfaces.DailyRevenue)
	for _, p := range r.payments {
		if p.Status != models.PaymentStatusPaid || p.PaidAt == nil || !p.PaidAt.After(since) {
			continue
		}
		day := p.PaidAt.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &interfaces.DailyRevenue{Date: day}
			byDay[day] = d
		}
		d.Count++
		d.Amount += p.Amount
	}
	var out []*interfaces.DailyRevenue
	for _, d := range byDay {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakePaymentRepo) GetTotalCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.payments)), nil
}

// fakeMapsProvider serves a fixed route.
type fakeMapsProvider struct {
	distanceKm float64
	err        error
}

func (m *fakeMapsProvider) GetDistance(ctx context.Context, request *maps.DistanceRequest) (*maps.DistanceResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &maps.DistanceResponse{
		DistanceKm:      m.distanceKm,
		DurationSeconds: int(m.distanceKm * 90),
		OriginAddress:   request.Origin,
		DestAddress:     request.Destination,
	}, nil
}

func (m *fakeMapsProvider) Autocomplete(ctx context.Context, request *maps.AutocompleteRequest) (*maps.AutocompleteResponse, error) {
	return &maps.AutocompleteResponse{Predictions: []maps.Prediction{
		{PlaceID: "p1", Description: request.Input + " Railway Station"},
	}}, nil
}

func (m *fakeMapsProvider) GetPlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error) {
	return &maps.PlaceDetails{PlaceID: placeID, Name: "Somewhere"}, nil
}

// fakePaymentProvider records calls and verifies against a fixed verdict.
type fakePaymentProvider struct {
	mu        sync.Mutex
	orders    int
	verifyErr error
	refunds   []string
}

func (p *fakePaymentProvider) Name() string { return "fake" }

func (p *fakePaymentProvider) CreateOrder(ctx context.Context, request *payment.OrderRequest) (*payment.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders++
	return &payment.Order{
		OrderID:   fmt.Sprintf("order_%d", p.orders),
		Status:    "created",
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (p *fakePaymentProvider) VerifyPayment(ctx context.Context, request *payment.VerificationRequest) error {
	return p.verifyErr
}

func (p *fakePaymentProvider) Refund(ctx context.Context, request *payment.RefundRequest) (*payment.Refund, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refunds = append(p.refunds, request.PaymentID)
	return &payment.Refund{
		RefundID:  fmt.Sprintf("rfnd_%d", len(p.refunds)),
		Status:    "processed",
		Amount:    request.Amount,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// fakeSMSProvider collects outbound messages.
type fakeSMSProvider struct {
	mu       sync.Mutex
	messages []*sms.SMSRequest
}

func (p *fakeSMSProvider) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, request)
	return &sms.SMSResponse{MessageID: fmt.Sprintf("SM%d", len(p.messages)), Status: "queued"}, nil
}
