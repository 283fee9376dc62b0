package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
)

// SetupVehicleRoutes sets up the public fleet browse routes.
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.GET("/:id", vehicleHandler.Get)
	}
}
