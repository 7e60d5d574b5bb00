package usecase

import (
	"fmt"
	"math"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// scoreCap bounds the score before the synthetic bonus is applied.
const scoreCap = 100

// Valuator computes point redemption values for offers.
// It is safe for concurrent use; every call reads one rate snapshot.
type Valuator struct {
	rates RatesSource
}

// NewValuator creates a Valuator reading from rates, or DefaultRates when nil.
func NewValuator(rates RatesSource) *Valuator {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Valuator{rates: rates}
}

// Rates returns the snapshot the next computation will use.
func (v *Valuator) Rates() *Rates {
	return v.rates.Current()
}

// Compute derives the full valuation of an offer.
//
// The points an award ticket would cost are estimated from the cash price
// (airline coefficient) and scaled by cabin, route and season. Comparing the
// realized cents-per-point to the airline's baseline gives the value ratio, from
// which the score and tier follow. The score is capped at 100 before the
// synthetic bonus, so synthetic offers may exceed 100.
//
// Offers whose points round to zero or below (zero or negative price) yield a
// zero score in the poor tier instead of dividing by zero.
func (v *Valuator) Compute(offer domain.FlightOffer) domain.ValueCalculation {
	rates := v.rates.Current()

	cash := offer.CashPrice()
	carrier := offer.PrimaryCarrier()
	baseValue := rates.PointValue(carrier)

	route := ClassifyRoute(offer.Segments(), offer.Outbound().Duration, rates.DomesticAirports)
	season := SeasonFor(offer.DepartureTime())

	basePoints := math.Round(cash * rates.PointsCoefficient(carrier))
	points := roundPoints(basePoints *
		rates.CabinMultiplier(offer.Cabin()) *
		route.Multiplier() *
		season.Multiplier())

	if points <= 0 {
		savings := math.Max(0, cash)
		return domain.ValueCalculation{
			CashPrice:      cash,
			Recommendation: domain.RecommendationPoor,
			Savings:        &savings,
			ValueReason:    valueReason(domain.RecommendationPoor, 0),
		}
	}

	centsPerPoint := cash * 100 / float64(points)
	pointsValue := float64(points) * baseValue / 100
	ratio := centsPerPoint / baseValue

	bonus := 1.0
	if offer.IsSynthetic {
		bonus = rates.SyntheticBonus
	}
	score := int(math.Round(math.Min(scoreCap, ratio*100) * bonus))

	recommendation := domain.RecommendationFor(ratio)
	savings := math.Max(0, cash-pointsValue)

	return domain.ValueCalculation{
		CashPrice:      cash,
		PointsRequired: points,
		PointsValue:    pointsValue,
		CentsPerPoint:  centsPerPoint,
		EstimatedValue: score,
		Recommendation: recommendation,
		Savings:        &savings,
		ValueReason:    valueReason(recommendation, ratio),
	}
}

// Score returns a copy of the offer with EstimatedValue attached.
func (v *Valuator) Score(offer domain.FlightOffer) domain.FlightOffer {
	return offer.WithEstimatedValue(v.Compute(offer).EstimatedValue)
}

// Appraise scores an offer and bundles it with its valuation and display details.
func (v *Valuator) Appraise(offer domain.FlightOffer) domain.ValuedOffer {
	calc := v.Compute(offer)
	return domain.ValuedOffer{
		Offer:        offer.WithEstimatedValue(calc.EstimatedValue),
		Value:        calc,
		PointsEarned: v.PointsEarned(offer),
		AirlineName:  v.AirlineName(offer.PrimaryCarrier()),
		Duration:     domain.FormatDuration(offer.DurationMinutes()),
	}
}

// AirlineName returns the display name for a carrier code, or the code when unknown.
func (v *Valuator) AirlineName(code string) string {
	return v.rates.Current().AirlineName(code)
}

// PointsEarned estimates the loyalty points earned by paying cash for the offer.
func (v *Valuator) PointsEarned(offer domain.FlightOffer) int {
	rates := v.rates.Current()
	earned := offer.CashPrice() *
		rates.EarnRate(offer.PrimaryCarrier()) *
		rates.CabinEarnMultiplier(offer.Cabin())
	return roundPoints(earned)
}

// maxPoints is the largest point count kept exact by float64.
const maxPoints = 1 << 53

// roundPoints rounds to int, clamping at maxPoints so absurd prices cannot
// wrap the conversion.
func roundPoints(f float64) int {
	return int(math.Round(math.Min(f, maxPoints)))
}

func valueReason(rec domain.Recommendation, ratio float64) string {
	pct := roundPoints(ratio*100 - 100)

	switch rec {
	case domain.RecommendationExcellent:
		return fmt.Sprintf("Outstanding value! You're getting %d%% more value than typical redemptions.", pct)
	case domain.RecommendationGood:
		return fmt.Sprintf("Good value redemption, %d%% above average point value.", pct)
	case domain.RecommendationFair:
		return "Fair value. Consider if you have points to spare or need flexibility."
	default:
		return "Below average value. Consider paying cash or looking for better redemption options."
	}
}
