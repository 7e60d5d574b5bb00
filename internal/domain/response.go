package domain

// ValuedOffer is a scored offer with its full valuation and display details.
type ValuedOffer struct {
	// Offer carries EstimatedValue set by scoring
	Offer FlightOffer `json:"offer"`

	// Value is the full valuation of the offer
	Value ValueCalculation `json:"value"`

	// PointsEarned is the loyalty points the cash fare would earn
	PointsEarned int `json:"pointsEarned"`

	// AirlineName is the display name of the primary carrier
	AirlineName string `json:"airlineName"`

	// Duration is the formatted total duration (e.g., "6h 30m")
	Duration string `json:"duration"`
}

// SearchResponse represents the ranked result of an offer search.
type SearchResponse struct {
	// SearchCriteria contains the normalized search parameters
	SearchCriteria SearchCriteria `json:"searchCriteria"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Offers contains the valued offers after filtering and sorting
	Offers []ValuedOffer `json:"offers"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// SearchID uniquely identifies this search
	SearchID string `json:"searchId"`

	// TotalResults is the number of offers returned
	TotalResults int `json:"totalResults"`

	// TotalBeforeFilter is the number of offers collected from sources
	TotalBeforeFilter int `json:"totalBeforeFilter"`

	// SourcesQueried is the number of sources that were queried
	SourcesQueried int `json:"sourcesQueried"`

	// SourcesSucceeded is the number of sources that returned results
	SourcesSucceeded int `json:"sourcesSucceeded"`

	// SourcesFailed is the number of sources that failed or timed out
	SourcesFailed int `json:"sourcesFailed"`

	// SortBy is the sort key that was applied
	SortBy SortKey `json:"sortBy"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`

	// CacheHit indicates whether the source offers came from cache
	CacheHit bool `json:"cacheHit"`
}

// NewSearchResponse creates a SearchResponse and sets TotalResults.
func NewSearchResponse(criteria *SearchCriteria, offers []ValuedOffer, metadata SearchMetadata) SearchResponse {
	if offers == nil {
		offers = []ValuedOffer{}
	}
	metadata.TotalResults = len(offers)

	return SearchResponse{
		SearchCriteria: *criteria,
		Metadata:       metadata,
		Offers:         offers,
	}
}

// SourceResult is the outcome of querying a single offer source.
type SourceResult struct {
	// Source is the name of the source
	Source string

	// Offers contains the offers returned by this source
	Offers []FlightOffer

	// Error is set if the source query failed
	Error error

	// DurationMs is how long the source query took
	DurationMs int64
}

// IsSuccess returns true if the source query succeeded.
func (sr *SourceResult) IsSuccess() bool {
	return sr.Error == nil
}

// MaxCompareOffers is the largest number of offers a comparison accepts.
const MaxCompareOffers = 3

// Comparison is a side-by-side valuation of a few offers.
type Comparison struct {
	// Offers are the valued offers in request order
	Offers []ValuedOffer `json:"offers"`

	// BestValueID is the offer with the highest estimated value
	BestValueID string `json:"bestValueId"`

	// CheapestID is the offer with the lowest cash price
	CheapestID string `json:"cheapestId"`

	// FastestID is the offer with the shortest total duration
	FastestID string `json:"fastestId"`
}
