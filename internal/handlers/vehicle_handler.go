package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideinbls/internal/models"
	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// List returns the bookable fleet, optionally filtered by type.
func (h *VehicleHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	vehicleType := models.VehicleType(c.Query("type"))

	vehicles, meta, err := h.vehicleService.ListBookable(c.Request.Context(), vehicleType, params)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles", vehicles, &utils.Meta{Pagination: meta, Count: len(vehicles)})
}

func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Vehicle")
		return
	}

	utils.SuccessResponse(c, "Vehicle", vehicle)
}

// Admin endpoints

func (h *VehicleHandler) AdminList(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	vehicles, meta, err := h.vehicleService.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles", vehicles, &utils.Meta{Pagination: meta, Count: len(vehicles)})
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var request services.VehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VEHICLE_CREATE_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "Vehicle created", vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var request services.VehicleUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VEHICLE_UPDATE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicle updated", vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VEHICLE_DELETE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted", nil)
}

func (h *VehicleHandler) SetAvailability(c *gin.Context) {
	var request struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.vehicleService.SetAvailability(c.Request.Context(), c.Param("id"), *request.Available); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VEHICLE_AVAILABILITY_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicle availability updated", nil)
}
