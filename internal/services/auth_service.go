package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/utils"
	"rideinbls/pkg/cache"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/sms"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*OTPResponse, error)
	VerifyOTP(ctx context.Context, request *VerifyOTPRequest) (*AuthResponse, error)
	ResendOTP(ctx context.Context, phone string) (*OTPResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, phone string) (*OTPResponse, error)
	ResetPassword(ctx context.Context, request *ResetPasswordRequest) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type authService struct {
	userRepo    interfaces.UserRepository
	cache       *cache.RedisCache
	smsProvider sms.SMSProvider
	jwtSecret   string
	logger      *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	redisCache *cache.RedisCache,
	smsProvider sms.SMSProvider,
	jwtSecret string,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		cache:       redisCache,
		smsProvider: smsProvider,
		jwtSecret:   jwtSecret,
		logger:      log,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,strong_password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email or phone
	Password   string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone" validate:"required,phone"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,strong_password"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type OTPResponse struct {
	Phone     string `json:"phone"`
	ExpiresIn int64  `json:"expires_in"`
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*OTPResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, _ := s.userRepo.GetByEmail(ctx, request.Email); existing != nil {
		return nil, fmt.Errorf("user with this email already exists")
	}
	if existing, _ := s.userRepo.GetByPhone(ctx, request.Phone); existing != nil {
		return nil, fmt.Errorf("user with this phone already exists")
	}

	hashedPassword, err := s.hashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: request.Username,
		Email:    request.Email,
		Phone:    request.Phone,
		Password: hashedPassword,
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusPending,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.LogUserAction(user.ID, utils.EventUserRegistered, map[string]interface{}{
		"phone": utils.MaskPhone(user.Phone),
	})

	return s.sendOTP(ctx, user.Phone, utils.CacheOTPPrefix)
}

func (s *authService) VerifyOTP(ctx context.Context, request *VerifyOTPRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkOTP(ctx, request.Phone, request.OTP, utils.CacheOTPPrefix); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPhone(ctx, request.Phone)
	if err != nil {
		return nil, err
	}

	if user.Status == models.UserStatusPending || !user.IsPhoneVerified {
		if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{
			"status":            models.UserStatusActive,
			"is_phone_verified": true,
		}); err != nil {
			return nil, err
		}
		user.Status = models.UserStatusActive
		user.IsPhoneVerified = true
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) ResendOTP(ctx context.Context, phone string) (*OTPResponse, error) {
	if _, err := s.userRepo.GetByPhone(ctx, phone); err != nil {
		return nil, err
	}
	return s.sendOTP(ctx, phone, utils.CacheOTPPrefix)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.findByIdentifier(ctx, request.Identifier)
	if err != nil {
		return nil, errors.New(utils.ErrInvalidCredentials)
	}

	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, errors.New(utils.ErrInvalidCredentials)
	}

	if !user.IsPhoneVerified {
		if _, err := s.sendOTP(ctx, user.Phone, utils.CacheOTPPrefix); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("phone not verified, otp sent")
	}

	now := time.Now()
	_ = s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now})
	user.LastLoginAt = &now

	s.logger.LogUserAction(user.ID, utils.EventUserLogin, nil)

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, errors.New(utils.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("account is blocked")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) ForgotPassword(ctx context.Context, phone string) (*OTPResponse, error) {
	if _, err := s.userRepo.GetByPhone(ctx, phone); err != nil {
		return nil, err
	}
	return s.sendOTP(ctx, phone, utils.CacheResetPrefix)
}

func (s *authService) ResetPassword(ctx context.Context, request *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkOTP(ctx, request.Phone, request.OTP, utils.CacheResetPrefix); err != nil {
		return err
	}

	user, err := s.userRepo.GetByPhone(ctx, request.Phone)
	if err != nil {
		return err
	}

	hashedPassword, err := s.hashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Update(ctx, user.ID, map[string]interface{}{"password": hashedPassword})
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if utils.IsValidEmail(identifier) {
		return s.userRepo.GetByEmail(ctx, identifier)
	}
	return s.userRepo.GetByPhone(ctx, identifier)
}

func (s *authService) sendOTP(ctx context.Context, phone, prefix string) (*OTPResponse, error) {
	normalized := utils.NormalizePhone(phone)

	rateKey := utils.CacheRateLimitPrefix + prefix + normalized
	attempts, err := s.cache.Increment(ctx, rateKey)
	if err == nil && attempts == 1 {
		_ = s.cache.SetExpire(ctx, rateKey, utils.OTPExpiry)
	}
	if attempts > utils.OTPRateLimit {
		return nil, fmt.Errorf("too many otp requests, try again later")
	}

	otp := utils.GenerateOTP()
	if err := s.cache.Set(ctx, prefix+normalized, otp, utils.OTPExpiry); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	message := fmt.Sprintf("%s is your %s verification code. Valid for %d minutes.",
		otp, utils.AppName, int(utils.OTPExpiry.Minutes()))

	if _, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
		To:      normalized,
		Message: message,
		Type:    "otp",
	}); err != nil {
		s.logger.WithError(err).WithField("phone", utils.MaskPhone(normalized)).Error("Failed to send otp")
		return nil, fmt.Errorf("failed to send otp: %w", err)
	}

	return &OTPResponse{
		Phone:     utils.MaskPhone(normalized),
		ExpiresIn: int64(utils.OTPExpiry.Seconds()),
	}, nil
}

func (s *authService) checkOTP(ctx context.Context, phone, otp, prefix string) error {
	normalized := utils.NormalizePhone(phone)

	var stored string
	if err := s.cache.Get(ctx, prefix+normalized, &stored); err != nil {
		return errors.New(utils.ErrInvalidOTP)
	}
	if stored != otp {
		return errors.New(utils.ErrInvalidOTP)
	}

	// One shot: a verified code cannot be replayed.
	_ = s.cache.Delete(ctx, prefix+normalized)
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := utils.GenerateTokenPair(user.ID, string(user.UserType), user.Email, user.Phone, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{
		User:   user,
		Tokens: tokens,
	}, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
