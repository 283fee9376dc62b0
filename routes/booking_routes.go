package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
	"rideinbls/internal/middleware"
)

// SetupBookingRoutes sets up the authenticated booking routes.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.GET("", bookingHandler.MyBookings)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id/cancel", bookingHandler.Cancel)
		bookings.PUT("/vehicles/:vehicleId/cancel", bookingHandler.CancelByVehicle)
	}
}
