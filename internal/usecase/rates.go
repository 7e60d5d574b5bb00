package usecase

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Rates is an immutable snapshot of every table the valuation reads.
// Replace a snapshot as a whole; never modify one after it is published.
type Rates struct {
	// PointValues is the baseline worth of one loyalty point, in cents, per airline
	PointValues       map[string]float64
	DefaultPointValue float64

	// PointsCoefficients converts one unit of cash into base points, per airline
	PointsCoefficients       map[string]float64
	DefaultPointsCoefficient float64

	// CabinMultipliers scale points required by cabin; unknown cabins are neutral
	CabinMultipliers map[string]float64

	// EarnRates is points earned per unit of cash spent, per airline
	EarnRates       map[string]float64
	DefaultEarnRate float64

	// CabinEarnMultipliers scale points earned by cabin
	CabinEarnMultipliers map[string]float64

	// SyntheticBonus is applied to the capped score of synthetic offers
	SyntheticBonus float64

	AirlineNames map[string]string

	// DomesticAirports are the airports whose pairs classify as domestic routes
	DomesticAirports AirportSet
}

// RatesSource hands out the current rate snapshot.
type RatesSource interface {
	Current() *Rates
}

// Current returns r itself, so a fixed snapshot can serve as a RatesSource.
func (r *Rates) Current() *Rates {
	return r
}

// DefaultRates returns the built-in rate tables.
func DefaultRates() *Rates {
	return &Rates{
		PointValues: map[string]float64{
			// U.S. carriers
			"AA": 1.8, "UA": 1.3, "DL": 1.2, "AS": 1.0, "B6": 1.4, "WN": 1.5, "F9": 0.7, "NK": 0.5,
			// International carriers
			"BA": 1.5, "LH": 1.2, "AF": 1.1, "KL": 1.1, "EK": 1.0, "QR": 1.2, "SQ": 1.3,
			"CX": 1.4, "JL": 1.2, "NH": 1.3, "TK": 1.1, "LX": 1.2, "OS": 1.1, "SN": 1.0,
			"AY": 1.1, "SK": 1.0, "IB": 1.1, "TP": 1.0, "AZ": 0.9, "AC": 1.2, "WF": 1.0,
		},
		DefaultPointValue: 1.0,
		PointsCoefficients: map[string]float64{
			"AA": 85, "UA": 100, "DL": 110, "AS": 90, "B6": 80, "WN": 70,
			"BA": 75, "LH": 85, "AF": 90, "KL": 90, "EK": 95, "QR": 85, "SQ": 80,
		},
		DefaultPointsCoefficient: 90,
		CabinMultipliers: map[string]float64{
			"ECONOMY":         1.0,
			"PREMIUM_ECONOMY": 1.4,
			"BUSINESS":        2.2,
			"FIRST":           3.5,
		},
		EarnRates: map[string]float64{
			"AA": 5, "UA": 5, "DL": 5, "AS": 1, "B6": 3, "WN": 6,
			"BA": 1, "LH": 1, "AF": 1, "KL": 1, "EK": 1, "QR": 1, "SQ": 1,
		},
		DefaultEarnRate: 1,
		CabinEarnMultipliers: map[string]float64{
			"ECONOMY":         1.0,
			"PREMIUM_ECONOMY": 1.25,
			"BUSINESS":        1.5,
			"FIRST":           2.0,
		},
		SyntheticBonus: 1.15,
		AirlineNames: map[string]string{
			"AA": "American Airlines",
			"UA": "United Airlines",
			"DL": "Delta Air Lines",
			"AS": "Alaska Airlines",
			"B6": "JetBlue Airways",
			"WN": "Southwest Airlines",
			"F9": "Frontier Airlines",
			"NK": "Spirit Airlines",
			"BA": "British Airways",
			"LH": "Lufthansa",
			"AF": "Air France",
			"KL": "KLM Royal Dutch Airlines",
			"EK": "Emirates",
			"QR": "Qatar Airways",
			"SQ": "Singapore Airlines",
			"CX": "Cathay Pacific",
			"JL": "Japan Airlines",
			"NH": "All Nippon Airways",
			"TK": "Turkish Airlines",
			"LX": "Swiss International Air Lines",
			"OS": "Austrian Airlines",
			"SN": "Brussels Airlines",
			"AY": "Finnair",
			"SK": "SAS Scandinavian Airlines",
			"IB": "Iberia",
			"TP": "TAP Air Portugal",
			"AZ": "ITA Airways",
			"AC": "Air Canada",
		},
		DomesticAirports: NewAirportSet(DefaultDomesticAirports...),
	}
}

// PointValue returns the airline's cents-per-point baseline, or the default.
func (r *Rates) PointValue(airline string) float64 {
	if v, ok := r.PointValues[strings.ToUpper(airline)]; ok && v > 0 {
		return v
	}
	return r.DefaultPointValue
}

// PointsCoefficient returns the airline's cash-to-points coefficient, or the default.
func (r *Rates) PointsCoefficient(airline string) float64 {
	if v, ok := r.PointsCoefficients[strings.ToUpper(airline)]; ok && v > 0 {
		return v
	}
	return r.DefaultPointsCoefficient
}

// CabinMultiplier returns the points multiplier for a cabin; 1.0 when unknown.
func (r *Rates) CabinMultiplier(cabin string) float64 {
	if v, ok := r.CabinMultipliers[strings.ToUpper(cabin)]; ok && v > 0 {
		return v
	}
	return 1.0
}

// EarnRate returns the airline's points-per-cash earn rate, or the default.
func (r *Rates) EarnRate(airline string) float64 {
	if v, ok := r.EarnRates[strings.ToUpper(airline)]; ok && v > 0 {
		return v
	}
	return r.DefaultEarnRate
}

// CabinEarnMultiplier returns the earn multiplier for a cabin; 1.0 when unknown.
func (r *Rates) CabinEarnMultiplier(cabin string) float64 {
	if v, ok := r.CabinEarnMultipliers[strings.ToUpper(cabin)]; ok && v > 0 {
		return v
	}
	return 1.0
}

// AirlineName returns the display name for a carrier code, falling back to the code.
func (r *Rates) AirlineName(code string) string {
	if name, ok := r.AirlineNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// Validate checks that every default and multiplier is positive and finite.
func (r *Rates) Validate() error {
	if !isRate(r.DefaultPointValue) {
		return fmt.Errorf("defaultPointValue must be positive and finite, got %v", r.DefaultPointValue)
	}
	if !isRate(r.DefaultPointsCoefficient) {
		return fmt.Errorf("defaultPointsCoefficient must be positive and finite, got %v", r.DefaultPointsCoefficient)
	}
	if !isRate(r.DefaultEarnRate) {
		return fmt.Errorf("defaultEarnRate must be positive and finite, got %v", r.DefaultEarnRate)
	}
	if !isRate(r.SyntheticBonus) {
		return fmt.Errorf("syntheticBonus must be positive and finite, got %v", r.SyntheticBonus)
	}

	tables := map[string]map[string]float64{
		"pointValues":          r.PointValues,
		"pointsCoefficients":   r.PointsCoefficients,
		"cabinMultipliers":     r.CabinMultipliers,
		"earnRates":            r.EarnRates,
		"cabinEarnMultipliers": r.CabinEarnMultipliers,
	}
	for name, table := range tables {
		for key, v := range table {
			if !isRate(v) {
				return fmt.Errorf("%s[%s] must be positive and finite, got %v", name, key, v)
			}
		}
	}
	return nil
}

// isRate rejects zero, negatives, NaN and +Inf.
func isRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// RatesHolder publishes rate snapshots to concurrent readers.
// Readers always see one complete snapshot.
type RatesHolder struct {
	current atomic.Pointer[Rates]
}

// NewRatesHolder creates a holder publishing initial, or DefaultRates when nil.
func NewRatesHolder(initial *Rates) *RatesHolder {
	if initial == nil {
		initial = DefaultRates()
	}
	h := &RatesHolder{}
	h.current.Store(initial)
	return h
}

// Current returns the published snapshot.
func (h *RatesHolder) Current() *Rates {
	return h.current.Load()
}

// Replace publishes a new snapshot. Nil is ignored.
func (h *RatesHolder) Replace(rates *Rates) {
	if rates == nil {
		return
	}
	h.current.Store(rates)
}
