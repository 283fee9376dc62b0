package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
	"rideinbls/internal/middleware"
)

// SetupAuthRoutes sets up registration, OTP verification and session routes.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
		auth.POST("/resend-otp", authHandler.ResendOTP)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	profile := r.Group("/auth")
	profile.Use(middleware.AuthRequired(jwtSecret))
	{
		profile.GET("/me", authHandler.Profile)
	}
}
