package domain

// RouteCategory classifies a route by domestic/international and estimated distance.
type RouteCategory string

// Route categories, shortest and cheapest first.
const (
	RouteDomesticShort       RouteCategory = "DOMESTIC_SHORT"
	RouteDomesticMedium      RouteCategory = "DOMESTIC_MEDIUM"
	RouteDomesticLong        RouteCategory = "DOMESTIC_LONG"
	RouteInternationalShort  RouteCategory = "INTERNATIONAL_SHORT"
	RouteInternationalMedium RouteCategory = "INTERNATIONAL_MEDIUM"
	RouteInternationalLong   RouteCategory = "INTERNATIONAL_LONG"
	RouteTranscontinental    RouteCategory = "TRANSCONTINENTAL"
)

// Multiplier returns the points multiplier applied for the route category.
// Unknown categories are neutral (1.0).
func (r RouteCategory) Multiplier() float64 {
	switch r {
	case RouteDomesticShort:
		return 0.9
	case RouteDomesticMedium:
		return 1.0
	case RouteDomesticLong:
		return 1.1
	case RouteInternationalShort:
		return 1.2
	case RouteInternationalMedium:
		return 1.3
	case RouteInternationalLong:
		return 1.5
	case RouteTranscontinental:
		return 1.6
	default:
		return 1.0
	}
}

// IsDomestic reports whether the category is one of the domestic buckets.
func (r RouteCategory) IsDomestic() bool {
	return r == RouteDomesticShort || r == RouteDomesticMedium || r == RouteDomesticLong
}

// Season is a travel-demand period keyed by departure month.
type Season string

// Seasons.
const (
	SeasonPeak     Season = "PEAK"
	SeasonShoulder Season = "SHOULDER"
	SeasonOffPeak  Season = "OFF_PEAK"
)

// Multiplier returns the points multiplier applied for the season.
func (s Season) Multiplier() float64 {
	switch s {
	case SeasonPeak:
		return 1.3
	case SeasonShoulder:
		return 1.1
	case SeasonOffPeak:
		return 0.9
	default:
		return 1.0
	}
}

// Recommendation is the coarse redemption-value tier of an offer.
type Recommendation string

// Recommendation tiers, best first.
const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationFair      Recommendation = "fair"
	RecommendationPoor      Recommendation = "poor"
)

// Tier value ratio thresholds (realized cents-per-point / baseline cents-per-point).
const (
	ExcellentRatio = 1.5
	GoodRatio      = 1.2
	FairRatio      = 0.8
)

// RecommendationFor maps a value ratio to its tier. The mapping is monotonic.
func RecommendationFor(valueRatio float64) Recommendation {
	switch {
	case valueRatio >= ExcellentRatio:
		return RecommendationExcellent
	case valueRatio >= GoodRatio:
		return RecommendationGood
	case valueRatio >= FairRatio:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}

// Rank orders tiers for comparison: excellent=3 ... poor=0.
func (r Recommendation) Rank() int {
	switch r {
	case RecommendationExcellent:
		return 3
	case RecommendationGood:
		return 2
	case RecommendationFair:
		return 1
	default:
		return 0
	}
}

// ValueCalculation is the derived redemption analysis of one offer.
// It is computed on demand and never persisted.
type ValueCalculation struct {
	// CashPrice is the total price paid in cash
	CashPrice float64 `json:"cashPrice"`

	// PointsRequired is the number of loyalty points needed to redeem the offer
	PointsRequired int `json:"pointsRequired"`

	// PointsValue is the worth of PointsRequired at the airline's baseline rate, in currency units
	PointsValue float64 `json:"pointsValue"`

	// CentsPerPoint is the realized redemption value
	CentsPerPoint float64 `json:"centsPerPoint"`

	// EstimatedValue is the value score; 0-100, above 100 only for synthetic offers
	EstimatedValue int `json:"estimatedValue"`

	Recommendation Recommendation `json:"recommendation"`

	// Savings is the cash price minus the points value, floored at 0
	Savings *float64 `json:"savings,omitempty"`

	// ValueReason is a human-readable explanation of the recommendation
	ValueReason string `json:"valueReason"`
}
