package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID     primitive.ObjectID `json:"booking_id" bson:"booking_id" validate:"required"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	VehicleID     primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id"`
	Provider      string             `json:"provider" bson:"provider"`
	OrderID       string             `json:"order_id" bson:"order_id"`
	PaymentID     string             `json:"payment_id" bson:"payment_id"`
	Signature     string             `json:"-" bson:"signature"`
	Amount        float64            `json:"amount" bson:"amount" validate:"required"`
	Currency      string             `json:"currency" bson:"currency" default:"INR"`
	Status        PaymentStatus      `json:"status" bson:"status" default:"created"`
	FailureReason string             `json:"failure_reason" bson:"failure_reason"`
	RefundID      string             `json:"refund_id" bson:"refund_id"`
	RefundAmount  float64            `json:"refund_amount" bson:"refund_amount" default:"0"`
	PaidAt        *time.Time         `json:"paid_at" bson:"paid_at"`
	RefundedAt    *time.Time         `json:"refunded_at" bson:"refunded_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// Settled reports whether the payment counts toward revenue.
func (p *Payment) Settled() bool {
	return p.Status == PaymentStatusPaid
}
