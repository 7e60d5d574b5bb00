package usecase

import (
	"strings"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// milesPerMinute approximates cruise distance from block time.
const milesPerMinute = 8

// Distance bucket upper bounds in estimated miles (exclusive).
const (
	domesticShortMiles       = 4000
	domesticMediumMiles      = 12000
	internationalShortMiles  = 16000
	internationalMediumMiles = 48000
	internationalLongMiles   = 64000
)

// DefaultDomesticAirports is the U.S. airport allow-list used to tell domestic routes apart.
var DefaultDomesticAirports = []string{
	"JFK", "LAX", "ORD", "DFW", "DEN", "SFO", "SEA", "LAS", "PHX", "IAH",
	"MIA", "CLT", "EWR", "MSP", "DTW", "BOS", "PHL", "LGA", "DCA", "IAD",
}

// AirportSet is a set of IATA airport codes.
type AirportSet map[string]struct{}

// NewAirportSet builds a set from codes, normalized to upper case.
func NewAirportSet(codes ...string) AirportSet {
	set := make(AirportSet, len(codes))
	for _, code := range codes {
		set[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	return set
}

// Contains checks if the airport is in the set (case-insensitive).
func (s AirportSet) Contains(code string) bool {
	_, ok := s[strings.ToUpper(code)]
	return ok
}

// EstimateMiles converts block minutes into an estimated distance.
func EstimateMiles(minutes int) int {
	return minutes * milesPerMinute
}

// ClassifyRoute buckets a journey by whether both ends are domestic and by the
// distance estimated from its ISO-8601 duration. A journey without segments is
// international since there is nothing to match against the allow-list.
func ClassifyRoute(segments []domain.Segment, duration string, domestic AirportSet) domain.RouteCategory {
	miles := EstimateMiles(domain.ParseDurationMinutes(duration))

	isDomestic := len(segments) > 0 &&
		domestic.Contains(segments[0].Departure.IATACode) &&
		domestic.Contains(segments[len(segments)-1].Arrival.IATACode)

	if isDomestic {
		switch {
		case miles < domesticShortMiles:
			return domain.RouteDomesticShort
		case miles < domesticMediumMiles:
			return domain.RouteDomesticMedium
		default:
			return domain.RouteDomesticLong
		}
	}

	switch {
	case miles < internationalShortMiles:
		return domain.RouteInternationalShort
	case miles < internationalMediumMiles:
		return domain.RouteInternationalMedium
	case miles < internationalLongMiles:
		return domain.RouteInternationalLong
	default:
		return domain.RouteTranscontinental
	}
}
