package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type BookingType string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	BookingTypeImmediate BookingType = "immediate"
	BookingTypeScheduled BookingType = "scheduled"
)

type Booking struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	VehicleID   primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	Origin      string             `json:"origin" bson:"origin" validate:"required"`
	Destination string             `json:"destination" bson:"destination" validate:"required"`
	DistanceKm  float64            `json:"distance_km" bson:"distance_km"`
	IsRoundTrip bool               `json:"is_round_trip" bson:"is_round_trip" default:"false"`
	BookingType BookingType        `json:"booking_type" bson:"booking_type" default:"immediate"`
	StartAt     *time.Time         `json:"start_at" bson:"start_at"`
	EndAt       *time.Time         `json:"end_at" bson:"end_at"`
	Amount      float64            `json:"amount" bson:"amount" validate:"required"`
	Currency    string             `json:"currency" bson:"currency" default:"INR"`
	FareBasis   string             `json:"fare_basis" bson:"fare_basis"`
	OrderID     string             `json:"order_id" bson:"order_id"`
	Status      BookingStatus      `json:"status" bson:"status" default:"pending"`
	ConfirmedAt *time.Time         `json:"confirmed_at" bson:"confirmed_at"`
	CancelledAt *time.Time         `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
