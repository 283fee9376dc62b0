package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideinbls/internal/services"
	"rideinbls/internal/utils"
)

// QuoteHandler exposes the quote-session API the vehicle listing page
// drives: create a session from a route search, read and edit per-vehicle
// selections, reprice, gate submission and discard.
type QuoteHandler struct {
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// CreateQuote resolves the route and seeds a quote session with every
// bookable vehicle's rate card.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var request services.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.quoteService.CreateQuote(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "QUOTE_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "Quote created", response)
}

func (h *QuoteHandler) GetSelection(c *gin.Context) {
	quote, err := h.quoteService.GetSelection(c.Request.Context(), c.Param("id"), c.Param("vehicleId"))
	if err != nil {
		utils.NotFoundResponse(c, "Quote session")
		return
	}

	utils.SuccessResponse(c, "Selection", quote)
}

// UpdateSelection merges a partial edit and returns the repriced quote.
func (h *QuoteHandler) UpdateSelection(c *gin.Context) {
	var request services.SelectionUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	quote, err := h.quoteService.UpdateSelection(c.Request.Context(), c.Param("id"), c.Param("vehicleId"), &request)
	if err != nil {
		if err.Error() == utils.ErrQuoteNotFound {
			utils.NotFoundResponse(c, "Quote session")
			return
		}
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, "Selection updated", quote)
}

func (h *QuoteHandler) GetPrice(c *gin.Context) {
	fare, err := h.quoteService.GetPrice(c.Request.Context(), c.Param("id"), c.Param("vehicleId"))
	if err != nil {
		utils.NotFoundResponse(c, "Quote session")
		return
	}

	utils.SuccessResponse(c, "Price", fare)
}

// Validate runs the submission gate without side effects so the page can
// surface the reason next to the offending input.
func (h *QuoteHandler) Validate(c *gin.Context) {
	verdict, err := h.quoteService.ValidateForSubmission(c.Request.Context(), c.Param("id"), c.Param("vehicleId"))
	if err != nil {
		utils.NotFoundResponse(c, "Quote session")
		return
	}

	utils.SuccessResponse(c, "Validation", verdict)
}

func (h *QuoteHandler) DiscardSelection(c *gin.Context) {
	if err := h.quoteService.DiscardSelection(c.Request.Context(), c.Param("id"), c.Param("vehicleId")); err != nil {
		utils.NotFoundResponse(c, "Quote session")
		return
	}

	utils.SuccessResponse(c, "Selection discarded", nil)
}

func (h *QuoteHandler) DiscardSession(c *gin.Context) {
	h.quoteService.DiscardSession(c.Request.Context(), c.Param("id"))
	utils.NoContentResponse(c)
}

func (h *QuoteHandler) Autocomplete(c *gin.Context) {
	response, err := h.quoteService.Autocomplete(c.Request.Context(), c.Query("input"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "AUTOCOMPLETE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Predictions", response)
}

func (h *QuoteHandler) PlaceDetails(c *gin.Context) {
	details, err := h.quoteService.PlaceDetails(c.Request.Context(), c.Query("place_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "PLACE_DETAILS_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Place details", details)
}
