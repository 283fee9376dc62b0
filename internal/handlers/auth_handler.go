package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a pending account and sends a verification OTP.
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "REGISTRATION_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "Registered, verification code sent", response)
}

// VerifyOTP activates the account and returns a token pair.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var request services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.VerifyOTP(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "OTP_VERIFICATION_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Phone verified", response)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var request struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.ResendOTP(c.Request.Context(), request.Phone)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "OTP_SEND_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Verification code sent", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "LOGIN_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Logged in", response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "TOKEN_REFRESH_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Token refreshed", response)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var request struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.ForgotPassword(c.Request.Context(), request.Phone)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "FORGOT_PASSWORD_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Reset code sent", response)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var request services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "RESET_PASSWORD_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Password reset", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.NotFoundResponse(c, "User")
		return
	}

	utils.SuccessResponse(c, "Profile", user)
}
