package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/repositories/interfaces"
	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

type AdminHandler struct {
	analyticsService services.AnalyticsService
	userRepo         interfaces.UserRepository
}

func NewAdminHandler(analyticsService services.AnalyticsService, userRepo interfaces.UserRepository) *AdminHandler {
	return &AdminHandler{
		analyticsService: analyticsService,
		userRepo:         userRepo,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Dashboard", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	users, total, err := h.userRepo.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := utils.CreatePaginationMeta(params, total)
	utils.SuccessResponseWithMeta(c, "Users", users, &utils.Meta{Pagination: meta, Count: len(users)})
}

// SetUserStatus blocks or reinstates an account.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	var request struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	switch request.Status {
	case models.UserStatusActive, models.UserStatusBlocked:
	default:
		utils.BadRequestResponse(c, "Status must be active or blocked")
		return
	}

	if err := h.userRepo.UpdateStatus(c.Request.Context(), userID, request.Status); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "USER_STATUS_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "User status updated", nil)
}
