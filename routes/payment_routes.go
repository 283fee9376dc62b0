package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
	"rideinbls/internal/middleware"
)

// SetupPaymentRoutes sets up the authenticated checkout routes.
func SetupPaymentRoutes(r *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.POST("/orders", paymentHandler.CreateOrder)
		payments.POST("/verify", paymentHandler.VerifyPayment)
		payments.GET("", paymentHandler.MyPayments)
	}
}
