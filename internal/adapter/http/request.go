// Package http provides the HTTP handler layer for the flight value API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// SearchOffersRequest represents the request body for an offer search.
type SearchOffersRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LAX")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// Passengers is the number of passengers (1-9, default 1)
	Passengers int `json:"passengers,omitempty"`

	// CabinClass is ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST (optional)
	CabinClass string `json:"cabinClass,omitempty"`

	// Filters contains optional filtering criteria
	Filters *FiltersDTO `json:"filters,omitempty"`

	// SortBy is one of the keys listed by /flights/sort-options; unknown keys sort by recommended
	SortBy string `json:"sortBy,omitempty"`
}

// ValueOfferRequest carries a single offer to value.
type ValueOfferRequest struct {
	Offer *domain.FlightOffer `json:"offer"`
}

// RankOffersRequest carries caller-supplied offers to score, filter and sort.
type RankOffersRequest struct {
	Offers  []domain.FlightOffer `json:"offers"`
	Filters *FiltersDTO          `json:"filters,omitempty"`
	SortBy  string               `json:"sortBy,omitempty"`
}

// CompareOffersRequest carries one to three offers to compare side by side.
type CompareOffersRequest struct {
	Offers []domain.FlightOffer `json:"offers"`
}

// FiltersDTO represents optional result filters.
// Example: {"priceRange": {"min": 0, "max": 800}, "stops": ["nonstop"], "airlines": ["AA", "DL"]}
type FiltersDTO struct {
	// PriceRange restricts the cash total
	PriceRange *RangeDTO `json:"priceRange,omitempty"`

	// DepartureTimeWindow restricts the departure hour (0-24)
	DepartureTimeWindow *RangeDTO `json:"departureTimeWindow,omitempty"`

	// ArrivalTimeWindow restricts the arrival hour (0-24)
	ArrivalTimeWindow *RangeDTO `json:"arrivalTimeWindow,omitempty"`

	// DurationRange restricts the total duration in hours
	DurationRange *RangeDTO `json:"durationRange,omitempty"`

	// Stops keeps offers in the listed buckets: "nonstop", "1 stop", "2+ stops"
	Stops []string `json:"stops,omitempty" example:"nonstop"`

	// Airlines keeps offers whose primary carrier is listed
	Airlines []string `json:"airlines,omitempty" example:"AA,DL"`

	// CabinClass keeps offers in the listed cabins
	CabinClass []string `json:"cabinClass,omitempty" example:"ECONOMY"`
}

// RangeDTO is an inclusive numeric interval.
type RangeDTO struct {
	Min float64 `json:"min" example:"0"`
	Max float64 `json:"max" example:"800"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	airlineCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)
)

// maxHour bounds the time-of-day windows.
const maxHour = 24

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// When a field fails more than once the first message wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, seen := result[e.Field]; !seen {
			result[e.Field] = e.Message
		}
	}
	return result
}

func (v *ValidationErrors) orNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// Validate validates the search request, normalizing codes to upper case.
func (r *SearchOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origin = validateAirport(errs, "origin", r.Origin)
	r.Destination = validateAirport(errs, "destination", r.Destination)

	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	r.validateDepartureDate(errs)
	r.validatePassengers(errs)

	if r.CabinClass != "" {
		r.CabinClass = strings.ToUpper(r.CabinClass)
		if !domain.IsValidCabin(r.CabinClass) {
			errs.Add("cabinClass", "cabinClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
		}
	}

	validateFilters(errs, r.Filters)

	return errs.orNil()
}

// Validate checks that an offer was supplied.
func (r *ValueOfferRequest) Validate() error {
	errs := &ValidationErrors{}

	if r.Offer == nil {
		errs.Add("offer", "offer is required")
	} else {
		validateOffer(errs, "offer", r.Offer)
	}

	return errs.orNil()
}

// Validate checks every offer and the filters. An empty offer list is valid.
func (r *RankOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	for i := range r.Offers {
		validateOffer(errs, fmt.Sprintf("offers[%d]", i), &r.Offers[i])
	}
	validateFilters(errs, r.Filters)

	return errs.orNil()
}

// Validate checks the offer count and every offer.
func (r *CompareOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	switch {
	case len(r.Offers) == 0:
		errs.Add("offers", "at least one offer is required")
	case len(r.Offers) > domain.MaxCompareOffers:
		errs.Add("offers", fmt.Sprintf("at most %d offers can be compared", domain.MaxCompareOffers))
	}

	for i := range r.Offers {
		validateOffer(errs, fmt.Sprintf("offers[%d]", i), &r.Offers[i])
	}

	return errs.orNil()
}

func validateAirport(errs *ValidationErrors, field, code string) string {
	if code == "" {
		errs.Add(field, field+" is required")
		return ""
	}

	normalized := strings.ToUpper(code)
	if !airportCodePattern.MatchString(normalized) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return code
	}
	return normalized
}

func (r *SearchOffersRequest) validateDepartureDate(errs *ValidationErrors) {
	if r.DepartureDate == "" {
		errs.Add("departureDate", "departureDate is required")
		return
	}

	if !datePattern.MatchString(r.DepartureDate) {
		errs.Add("departureDate", "departureDate must be in YYYY-MM-DD format")
		return
	}

	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		errs.Add("departureDate", "departureDate is not a valid date")
	}
}

func (r *SearchOffersRequest) validatePassengers(errs *ValidationErrors) {
	if r.Passengers == 0 {
		r.Passengers = 1
		return
	}
	if r.Passengers < 1 {
		errs.Add("passengers", "passengers must be at least 1")
		return
	}
	if r.Passengers > 9 {
		errs.Add("passengers", "passengers cannot exceed 9")
	}
}

// validateOffer only checks what valuation cannot do without.
// Malformed prices and timestamps degrade to zero values downstream.
func validateOffer(errs *ValidationErrors, field string, offer *domain.FlightOffer) {
	if strings.TrimSpace(offer.ID) == "" {
		errs.Add(field+".id", "id is required")
	}

	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		errs.Add(field+".itineraries", "at least one itinerary with one segment is required")
	}
}

func validateFilters(errs *ValidationErrors, f *FiltersDTO) {
	if f == nil {
		return
	}

	validateRange(errs, "filters.priceRange", f.PriceRange, 0)
	validateRange(errs, "filters.departureTimeWindow", f.DepartureTimeWindow, maxHour)
	validateRange(errs, "filters.arrivalTimeWindow", f.ArrivalTimeWindow, maxHour)
	validateRange(errs, "filters.durationRange", f.DurationRange, 0)

	for i, stops := range f.Stops {
		if !domain.StopsBucket(stops).IsValid() {
			errs.Add(fmt.Sprintf("filters.stops[%d]", i),
				"stops must be one of: nonstop, 1 stop, 2+ stops")
		}
	}

	for i, airline := range f.Airlines {
		normalized := strings.ToUpper(strings.TrimSpace(airline))
		if !airlineCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i),
				"airline code must be 2 or 3 characters")
		}
		f.Airlines[i] = normalized
	}

	for i, cabin := range f.CabinClass {
		normalized := strings.ToUpper(strings.TrimSpace(cabin))
		if !domain.IsValidCabin(normalized) {
			errs.Add(fmt.Sprintf("filters.cabinClass[%d]", i),
				"cabinClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
		}
		f.CabinClass[i] = normalized
	}
}

// validateRange checks min <= max and non-negative bounds. A positive upper
// caps max; zero means unbounded.
func validateRange(errs *ValidationErrors, field string, r *RangeDTO, upper float64) {
	if r == nil {
		return
	}

	if r.Min < 0 {
		errs.Add(field+".min", "min must be a non-negative number")
	}
	if r.Max < 0 {
		errs.Add(field+".max", "max must be a non-negative number")
	}
	if upper > 0 && r.Max > upper {
		errs.Add(field+".max", fmt.Sprintf("max cannot exceed %g", upper))
	}
	if r.Min > r.Max {
		errs.Add(field, "min must be less than or equal to max")
	}
}
