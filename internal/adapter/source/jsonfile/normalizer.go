package jsonfile

import (
	"strings"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// normalize keeps the well-formed offers matching criteria and fills in the
// source tag. It reports how many records were dropped as malformed.
// Empty criteria fields match everything.
func normalize(offers []domain.FlightOffer, criteria domain.SearchCriteria) ([]domain.FlightOffer, int) {
	result := make([]domain.FlightOffer, 0, len(offers))
	skipped := 0

	for _, o := range offers {
		if !isValid(o) {
			skipped++
			continue
		}
		if !matches(o, criteria) {
			continue
		}
		result = append(result, normalizeOffer(o))
	}

	return result, skipped
}

// isValid checks that an offer has what valuation and display rely on.
func isValid(o domain.FlightOffer) bool {
	if o.ID == "" || strings.TrimSpace(o.Price.Total) == "" {
		return false
	}
	return len(o.Segments()) > 0
}

// matches compares the outbound endpoints and the departure date with criteria.
func matches(o domain.FlightOffer, criteria domain.SearchCriteria) bool {
	first, _ := o.FirstSegment()
	last, _ := o.LastSegment()

	if criteria.Origin != "" && !strings.EqualFold(first.Departure.IATACode, criteria.Origin) {
		return false
	}
	if criteria.Destination != "" && !strings.EqualFold(last.Arrival.IATACode, criteria.Destination) {
		return false
	}
	if criteria.DepartureDate != "" && !strings.HasPrefix(first.Departure.At, criteria.DepartureDate) {
		return false
	}
	return true
}

// normalizeOffer derives the source tag from IsSynthetic when the file leaves it out,
// and the reverse.
func normalizeOffer(o domain.FlightOffer) domain.FlightOffer {
	switch {
	case o.Source == "" && o.IsSynthetic:
		o.Source = domain.SourceSynthetic
	case o.Source == "":
		o.Source = domain.SourceGDS
	case strings.EqualFold(o.Source, domain.SourceSynthetic):
		o.Source = domain.SourceSynthetic
		o.IsSynthetic = true
	}
	return o
}
