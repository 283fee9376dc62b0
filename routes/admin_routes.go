package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
	"rideinbls/internal/middleware"
)

// SetupAdminRoutes sets up fleet management and dashboard routes.
func SetupAdminRoutes(
	r *gin.RouterGroup,
	adminHandler *handlers.AdminHandler,
	vehicleHandler *handlers.VehicleHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	jwtSecret string,
) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/status", adminHandler.SetUserStatus)

		admin.GET("/vehicles", vehicleHandler.AdminList)
		admin.POST("/vehicles", vehicleHandler.Create)
		admin.PUT("/vehicles/:id", vehicleHandler.Update)
		admin.DELETE("/vehicles/:id", vehicleHandler.Delete)
		admin.PUT("/vehicles/:id/availability", vehicleHandler.SetAvailability)

		admin.GET("/bookings", bookingHandler.AdminList)
		admin.GET("/payments", paymentHandler.AdminList)
	}
}
