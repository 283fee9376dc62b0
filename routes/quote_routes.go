package routes

import (
	"github.com/gin-gonic/gin"

	"rideinbls/internal/handlers"
)

// SetupQuoteRoutes sets up the quote-session API. Route search and place
// lookup are public so the landing page works without a login; selection
// edits ride on the session id the search handed out.
func SetupQuoteRoutes(r *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	places := r.Group("/places")
	{
		places.GET("/autocomplete", quoteHandler.Autocomplete)
		places.GET("/details", quoteHandler.PlaceDetails)
	}

	quotes := r.Group("/quotes")
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.DELETE("/:id", quoteHandler.DiscardSession)

		quotes.GET("/:id/vehicles/:vehicleId/selection", quoteHandler.GetSelection)
		quotes.PATCH("/:id/vehicles/:vehicleId/selection", quoteHandler.UpdateSelection)
		quotes.DELETE("/:id/vehicles/:vehicleId/selection", quoteHandler.DiscardSelection)
		quotes.GET("/:id/vehicles/:vehicleId/price", quoteHandler.GetPrice)
		quotes.GET("/:id/vehicles/:vehicleId/validate", quoteHandler.Validate)
	}
}
