package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SearchCriteria defines the parameters for an offer search request.
type SearchCriteria struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LAX")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// Passengers is the number of passengers (default: 1)
	Passengers int `json:"passengers"`

	// CabinClass is ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST (default: ECONOMY)
	CabinClass string `json:"cabinClass,omitempty"`
}

var (
	iataCode  = regexp.MustCompile(`^[A-Z]{3}$`)
	dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const maxPassengers = 9

var validCabins = map[string]bool{
	CabinEconomy:        true,
	CabinPremiumEconomy: true,
	CabinBusiness:       true,
	CabinFirst:          true,
}

// IsValidCabin checks if the cabin is a known cabin code (case-insensitive).
func IsValidCabin(cabin string) bool {
	return validCabins[strings.ToUpper(cabin)]
}

// Validate reports the first invalid field as a *ValidationError, which
// matches ErrInvalidRequest.
func (s *SearchCriteria) Validate() error {
	if err := validateAirport("origin", s.Origin); err != nil {
		return err
	}
	if err := validateAirport("destination", s.Destination); err != nil {
		return err
	}
	if s.Origin == s.Destination {
		return NewValidationError("destination", "origin and destination must be different")
	}

	switch {
	case s.DepartureDate == "":
		return NewValidationError("departureDate", "departureDate is required")
	case !dateShape.MatchString(s.DepartureDate):
		return NewValidationError("departureDate", fmt.Sprintf("departureDate must be in YYYY-MM-DD format, got %q", s.DepartureDate))
	}
	if _, err := time.Parse("2006-01-02", s.DepartureDate); err != nil {
		return NewValidationError("departureDate", fmt.Sprintf("departureDate %s is not a calendar date", s.DepartureDate))
	}

	if s.Passengers < 1 || s.Passengers > maxPassengers {
		return NewValidationError("passengers", fmt.Sprintf("passengers must be between 1 and %d, got %d", maxPassengers, s.Passengers))
	}

	if s.CabinClass != "" && !IsValidCabin(s.CabinClass) {
		return NewValidationError("cabinClass", fmt.Sprintf("cabinClass must be one of ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", s.CabinClass))
	}
	return nil
}

func validateAirport(field, code string) error {
	if code == "" {
		return NewValidationError(field, field+" is required")
	}
	if !iataCode.MatchString(code) {
		return NewValidationError(field, fmt.Sprintf("%s must be a 3-letter IATA code, got %q", field, code))
	}
	return nil
}

// SetDefaults applies default values to empty optional fields and
// normalizes the cabin to upper case.
func (s *SearchCriteria) SetDefaults() {
	if s.Passengers == 0 {
		s.Passengers = 1
	}
	if s.CabinClass == "" {
		s.CabinClass = CabinEconomy
	}
	s.CabinClass = strings.ToUpper(s.CabinClass)
}

// CacheKey returns a stable key for the criteria. Call after SetDefaults.
func (s *SearchCriteria) CacheKey() string {
	return strings.Join([]string{
		strings.ToUpper(s.Origin),
		strings.ToUpper(s.Destination),
		s.DepartureDate,
		strconv.Itoa(s.Passengers),
		strings.ToUpper(s.CabinClass),
	}, ":")
}
