package utils

import "time"

// Application Constants
const (
	AppName    = "RideInBls"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "en"
	DefaultCurrency    = "INR"
	DefaultCountryCode = "+91"
	DefaultTimeZone    = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	OTPLength          = 6
	OTPExpiry          = 10 * time.Minute
	ResetTokenExpiry   = 30 * time.Minute

	// Booking Constants
	MaxTripDistanceKm  = 2000.0
	MinBillableHours   = 1
	QuoteSessionTTL    = 30 * time.Minute
	QuoteSweepInterval = 5 * time.Minute

	// Payment Constants
	MinOrderAmount       = 1.0
	RefundProcessingTime = 3 * 24 * time.Hour

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
	OTPRateLimit     = 3
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidOTP         = "invalid or expired otp"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrPaymentFailed      = "payment failed"
	ErrVehicleNotFound    = "vehicle not found"
	ErrVehicleUnavailable = "vehicle is not available"
	ErrBookingNotFound    = "booking not found"
	ErrQuoteNotFound      = "quote session not found or expired"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheVehiclePrefix   = "vehicle:"
	CacheOTPPrefix       = "otp:"
	CacheResetPrefix     = "reset:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
)

// Event Types
const (
	EventUserRegistered   = "user_registered"
	EventUserLogin        = "user_login"
	EventQuoteCreated     = "quote_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventPaymentProcessed = "payment_processed"
	EventPaymentRefunded  = "payment_refunded"
)
