// Package usecase provides the business logic for scoring and ranking flight offers.
package usecase

import "github.com/flight-search/flight-value-ranking/internal/domain"

// ApplyFilters returns the offers that satisfy every restricted dimension of filters.
//
// Behavior:
//   - Nil or empty filters keep every offer
//   - Input order is preserved
//   - The result never aliases the input slice
//   - Does NOT mutate the original offers
//   - Performance is O(n) where n = number of offers
func ApplyFilters(offers []domain.FlightOffer, filters *domain.SearchFilters) []domain.FlightOffer {
	result := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if filters.MatchesOffer(offer) {
			result = append(result, offer)
		}
	}
	return result
}

// ApplyFiltersValued filters valued offers on their underlying offer.
func ApplyFiltersValued(items []domain.ValuedOffer, filters *domain.SearchFilters) []domain.ValuedOffer {
	result := make([]domain.ValuedOffer, 0, len(items))
	for _, item := range items {
		if filters.MatchesOffer(item.Offer) {
			result = append(result, item)
		}
	}
	return result
}

// AvailableAirlines lists the distinct primary carriers of the offers in first-seen order.
// It feeds the airline choices of a filter panel.
func AvailableAirlines(offers []domain.FlightOffer) []string {
	seen := make(map[string]struct{}, len(offers))
	airlines := make([]string, 0)
	for _, offer := range offers {
		code := offer.PrimaryCarrier()
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		airlines = append(airlines, code)
	}
	return airlines
}
