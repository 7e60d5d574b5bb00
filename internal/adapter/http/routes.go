package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight value API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *OfferHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchOffers)
	flights.POST("/value", h.ValueOffer)
	flights.POST("/rank", h.RankOffers)
	flights.POST("/compare", h.CompareOffers)
	flights.GET("/sort-options", h.SortOptions)

	api.GET("/airlines/:code", h.Airline)
}
