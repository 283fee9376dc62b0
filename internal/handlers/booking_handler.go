package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, meta, err := h.bookingService.MyBookings(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings", bookings, &utils.Meta{Pagination: meta, Count: len(bookings)})
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, "Booking", booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "BOOKING_CANCEL_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

// CancelByVehicle cancels the caller's live booking on a vehicle; the
// fleet page only knows vehicle ids.
func (h *BookingHandler) CancelByVehicle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.CancelByVehicle(c.Request.Context(), userID, c.Param("vehicleId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "BOOKING_CANCEL_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func (h *BookingHandler) AdminList(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	bookings, meta, err := h.bookingService.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings", bookings, &utils.Meta{Pagination: meta, Count: len(bookings)})
}
