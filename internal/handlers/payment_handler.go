package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateOrder prices the selection server side and opens a gateway order
// for frontend checkout.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.paymentService.CreateOrder(c.Request.Context(), userID, &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "ORDER_CREATE_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "Order created", response)
}

// VerifyPayment confirms the capture, books the vehicle and spends the
// quote selection.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.paymentService.VerifyPayment(c.Request.Context(), userID, &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_VERIFICATION_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Payment verified, booking confirmed", booking)
}

func (h *PaymentHandler) MyPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	payments, meta, err := h.paymentService.MyPayments(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments", payments, &utils.Meta{Pagination: meta, Count: len(payments)})
}

func (h *PaymentHandler) AdminList(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	payments, meta, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payments", payments, &utils.Meta{Pagination: meta, Count: len(payments)})
}
