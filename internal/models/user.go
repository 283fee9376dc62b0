package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string
type UserType string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"

	UserTypeCustomer UserType = "customer"
	UserTypeAdmin    UserType = "admin"
)

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username        string             `json:"username" bson:"username" validate:"required,min=2,max=50"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Phone           string             `json:"phone" bson:"phone" validate:"required"`
	Password        string             `json:"-" bson:"password"`
	UserType        UserType           `json:"user_type" bson:"user_type" default:"customer"`
	Status          UserStatus         `json:"status" bson:"status" default:"pending"`
	IsPhoneVerified bool               `json:"is_phone_verified" bson:"is_phone_verified" default:"false"`
	LastLoginAt     *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// Blocked users keep their account data but fail the auth gate.
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}
