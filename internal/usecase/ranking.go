package usecase

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// parallelScoreThreshold is the list size below which scoring stays on the caller's goroutine.
const parallelScoreThreshold = 64

// SortOffers orders offers by the given option. Sorting is stable, so offers
// comparing equal keep their input order.
//
// Sort keys:
//   - recommended (default): descending by EstimatedValue (unscored = 0)
//   - price / priceHigh: by cash total
//   - duration: ascending by total minutes
//   - departure / arrival: ascending by timestamp (unparsable = epoch)
//   - stops: ascending by number of connections
//
// Unknown keys sort as recommended. Does NOT mutate the input slice.
func SortOffers(offers []domain.FlightOffer, option domain.SortOption) []domain.FlightOffer {
	return sortByKey(offers, func(o domain.FlightOffer) domain.FlightOffer { return o }, option)
}

// SortValuedOffers orders valued offers on their underlying offer, like SortOffers.
func SortValuedOffers(items []domain.ValuedOffer, option domain.SortOption) []domain.ValuedOffer {
	return sortByKey(items, func(v domain.ValuedOffer) domain.FlightOffer { return v.Offer }, option)
}

// Rank filters then sorts offers.
func Rank(offers []domain.FlightOffer, filters *domain.SearchFilters, option domain.SortOption) []domain.FlightOffer {
	return SortOffers(ApplyFilters(offers, filters), option)
}

// RankValued filters then sorts valued offers.
func RankValued(items []domain.ValuedOffer, filters *domain.SearchFilters, option domain.SortOption) []domain.ValuedOffer {
	return SortValuedOffers(ApplyFiltersValued(items, filters), option)
}

// ScoreOffers appraises every offer, in parallel for large lists.
// The result is positionally aligned with the input.
func ScoreOffers(ctx context.Context, valuator *Valuator, offers []domain.FlightOffer) ([]domain.ValuedOffer, error) {
	result := make([]domain.ValuedOffer, len(offers))

	if len(offers) < parallelScoreThreshold {
		for i, offer := range offers {
			result[i] = valuator.Appraise(offer)
		}
		return result, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range offers {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result[i] = valuator.Appraise(offers[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// sortKey is the precomputed ordering key of one item.
type sortKey struct {
	index int
	value float64
}

func sortByKey[T any](items []T, offerOf func(T) domain.FlightOffer, option domain.SortOption) []T {
	result := make([]T, len(items))
	copy(result, items)

	if len(result) <= 1 {
		return result
	}

	option = domain.ParseSortOption(string(option.Key))
	extract := keyExtractor(option.Key)

	keys := make([]sortKey, len(result))
	for i, item := range result {
		keys[i] = sortKey{index: i, value: extract(offerOf(item))}
	}

	desc := option.Direction == domain.SortDesc
	sort.SliceStable(keys, func(i, j int) bool {
		if desc {
			return keys[i].value > keys[j].value
		}
		return keys[i].value < keys[j].value
	})

	sorted := make([]T, len(result))
	for i, k := range keys {
		sorted[i] = result[k.index]
	}
	return sorted
}

func keyExtractor(key domain.SortKey) func(domain.FlightOffer) float64 {
	switch key {
	case domain.SortPrice, domain.SortPriceHigh:
		return func(o domain.FlightOffer) float64 { return o.CashPrice() }
	case domain.SortDuration:
		return func(o domain.FlightOffer) float64 { return float64(o.DurationMinutes()) }
	case domain.SortDeparture:
		return func(o domain.FlightOffer) float64 { return float64(o.DepartureTime().Unix()) }
	case domain.SortArrival:
		return func(o domain.FlightOffer) float64 { return float64(o.ArrivalTime().Unix()) }
	case domain.SortStops:
		return func(o domain.FlightOffer) float64 { return float64(o.StopCount()) }
	default:
		return func(o domain.FlightOffer) float64 { return float64(o.Score()) }
	}
}
