package usecase

import (
	"context"
	"fmt"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// ValuationUseCase values and ranks offers supplied by the caller.
type ValuationUseCase interface {
	// Value returns the full valuation of a single offer.
	Value(offer domain.FlightOffer) domain.ValuedOffer

	// Rank scores, filters and sorts the given offers.
	Rank(ctx context.Context, offers []domain.FlightOffer, opts SearchOptions) ([]domain.ValuedOffer, error)

	// Compare values up to MaxCompareOffers offers side by side.
	Compare(offers []domain.FlightOffer) (*domain.Comparison, error)

	// AirlineName resolves a carrier code to its display name.
	AirlineName(code string) string
}

type valuationUseCase struct {
	valuator *Valuator
}

// NewValuationUseCase creates a ValuationUseCase backed by valuator.
func NewValuationUseCase(valuator *Valuator) ValuationUseCase {
	if valuator == nil {
		valuator = NewValuator(nil)
	}
	return &valuationUseCase{valuator: valuator}
}

func (uc *valuationUseCase) Value(offer domain.FlightOffer) domain.ValuedOffer {
	return uc.valuator.Appraise(offer)
}

func (uc *valuationUseCase) Rank(ctx context.Context, offers []domain.FlightOffer, opts SearchOptions) ([]domain.ValuedOffer, error) {
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	valued, err := ScoreOffers(ctx, uc.valuator, offers)
	if err != nil {
		return nil, fmt.Errorf("scoring offers: %w", err)
	}
	return RankValued(valued, opts.Filters, opts.SortBy), nil
}

// Compare keeps request order. Ties for best value, cheapest and fastest go to
// the earliest offer.
func (uc *valuationUseCase) Compare(offers []domain.FlightOffer) (*domain.Comparison, error) {
	if len(offers) == 0 {
		return nil, domain.WrapInvalidRequest("at least one offer is required")
	}
	if len(offers) > domain.MaxCompareOffers {
		return nil, domain.WrapInvalidRequest("at most %d offers can be compared, got %d", domain.MaxCompareOffers, len(offers))
	}

	comparison := &domain.Comparison{Offers: make([]domain.ValuedOffer, len(offers))}
	best, cheapest, fastest := 0, 0, 0

	for i, offer := range offers {
		comparison.Offers[i] = uc.valuator.Appraise(offer)

		if comparison.Offers[i].Value.EstimatedValue > comparison.Offers[best].Value.EstimatedValue {
			best = i
		}
		if offer.CashPrice() < offers[cheapest].CashPrice() {
			cheapest = i
		}
		if offer.DurationMinutes() < offers[fastest].DurationMinutes() {
			fastest = i
		}
	}

	comparison.BestValueID = offers[best].ID
	comparison.CheapestID = offers[cheapest].ID
	comparison.FastestID = offers[fastest].ID
	return comparison, nil
}

func (uc *valuationUseCase) AirlineName(code string) string {
	return uc.valuator.AirlineName(code)
}

var _ ValuationUseCase = (*valuationUseCase)(nil)
