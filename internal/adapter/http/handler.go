package http

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-value-ranking/internal/adapter/http/response"
	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

// OfferHandler handles HTTP requests for offer search and valuation endpoints.
type OfferHandler struct {
	search    usecase.OfferSearchUseCase
	valuation usecase.ValuationUseCase
	sources   int
}

// NewOfferHandler creates a new OfferHandler. sources is reported by the health check.
func NewOfferHandler(search usecase.OfferSearchUseCase, valuation usecase.ValuationUseCase, sources int) *OfferHandler {
	return &OfferHandler{
		search:    search,
		valuation: valuation,
		sources:   sources,
	}
}

// SearchOffers handles POST /api/v1/flights/search
//
// @Summary Search and rank flight offers
// @Description Queries every offer source, values each offer, then filters and sorts the result
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchOffersRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /flights/search [post]
func (h *OfferHandler) SearchOffers(c echo.Context) error {
	var req SearchOffersRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidBody.Send(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	criteria := ToDomainCriteria(&req)
	opts := ToSearchOptions(req.Filters, req.SortBy)

	result, err := h.search.Search(c.Request().Context(), criteria, opts)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, result)
}

// ValueOffer handles POST /api/v1/flights/value
//
// @Summary Value a single offer
// @Description Returns the points redemption analysis, value score and points earned for one offer
// @Tags flights
// @Accept json
// @Produce json
// @Param request body ValueOfferRequest true "Offer to value"
// @Success 200 {object} ValueResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /flights/value [post]
func (h *OfferHandler) ValueOffer(c echo.Context) error {
	var req ValueOfferRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidBody.Send(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	valued := h.valuation.Value(*req.Offer)
	return response.OK(c, ToValueResponseDTO(valued))
}

// RankOffers handles POST /api/v1/flights/rank
//
// @Summary Rank caller-supplied offers
// @Description Scores the given offers, applies the filters and sorts by the requested key
// @Tags flights
// @Accept json
// @Produce json
// @Param request body RankOffersRequest true "Offers, filters and sort key"
// @Success 200 {object} RankResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /flights/rank [post]
func (h *OfferHandler) RankOffers(c echo.Context) error {
	var req RankOffersRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidBody.Send(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	opts := ToSearchOptions(req.Filters, req.SortBy)

	ranked, err := h.valuation.Rank(c.Request().Context(), req.Offers, opts)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToRankResponseDTO(req.Offers, ranked, opts.SortBy.Key))
}

// CompareOffers handles POST /api/v1/flights/compare
//
// @Summary Compare up to three offers
// @Description Values each offer and names the best value, cheapest and fastest one
// @Tags flights
// @Accept json
// @Produce json
// @Param request body CompareOffersRequest true "One to three offers"
// @Success 200 {object} domain.Comparison
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /flights/compare [post]
func (h *OfferHandler) CompareOffers(c echo.Context) error {
	var req CompareOffersRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidBody.Send(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	comparison, err := h.valuation.Compare(req.Offers)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, comparison)
}

// SortOptions handles GET /api/v1/flights/sort-options
//
// @Summary List sort options
// @Tags flights
// @Produce json
// @Success 200 {object} SortOptionsDTO
// @Router /flights/sort-options [get]
func (h *OfferHandler) SortOptions(c echo.Context) error {
	return response.OK(c, ToSortOptionsDTO())
}

// Airline handles GET /api/v1/airlines/:code
//
// @Summary Resolve an airline name
// @Description Unknown codes echo the code back with known=false
// @Tags airlines
// @Produce json
// @Param code path string true "IATA carrier code" example(AA)
// @Success 200 {object} AirlineDTO
// @Failure 400 {object} response.ErrorDetail "Invalid code"
// @Router /airlines/{code} [get]
func (h *OfferHandler) Airline(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if !airlineCodePattern.MatchString(code) {
		return response.BadRequest("code must be 2 or 3 characters").Send(c)
	}

	return response.OK(c, ToAirlineDTO(code, h.valuation.AirlineName(code)))
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *OfferHandler) Health(c echo.Context) error {
	return response.Health(c, h.sources)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *OfferHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.Validation.WithDetails(validationErrs.ToMap()).Send(c)
	}

	// Fallback for non-structured validation errors
	return response.Validation.WithMessage(err.Error()).Send(c)
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *OfferHandler) handleError(c echo.Context, err error) error {
	if domain.IsAllSourcesFailed(err) {
		return response.Unavailable.Send(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.Timeout.Send(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.Cancelled.Send(c)
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return response.Validation.WithDetails(map[string]string{fieldErr.Field: fieldErr.Message}).Send(c)
	}

	if domain.IsInvalidRequest(err) {
		return response.Validation.WithMessage(err.Error()).Send(c)
	}

	return response.Internal.Send(c)
}
