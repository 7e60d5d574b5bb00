package http

import (
	"strings"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

// ValueResponseDTO is the valuation of a single offer.
type ValueResponseDTO struct {
	OfferID      string                  `json:"offerId"`
	AirlineName  string                  `json:"airlineName"`
	Duration     string                  `json:"duration"`
	PointsEarned int                     `json:"pointsEarned"`
	Value        domain.ValueCalculation `json:"value"`
}

// RankResponseDTO is the ranked list produced from caller-supplied offers.
type RankResponseDTO struct {
	Metadata RankMetadataDTO      `json:"metadata"`
	Offers   []domain.ValuedOffer `json:"offers"`
}

// RankMetadataDTO describes how a ranked list was produced.
type RankMetadataDTO struct {
	TotalResults      int            `json:"totalResults"`
	TotalBeforeFilter int            `json:"totalBeforeFilter"`
	SortBy            domain.SortKey `json:"sortBy"`

	// AvailableAirlines lists the carriers present before filtering, for building airline filters
	AvailableAirlines []string `json:"availableAirlines"`
}

// SortOptionsDTO lists the selectable orderings.
type SortOptionsDTO struct {
	Default domain.SortKey      `json:"default"`
	Options []domain.SortOption `json:"options"`
}

// AirlineDTO is the display name of a carrier code.
type AirlineDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`

	// Known is false when the code has no display name and Name echoes the code
	Known bool `json:"known"`
}

// ToValueResponseDTO converts a valued offer to its response form.
func ToValueResponseDTO(v domain.ValuedOffer) *ValueResponseDTO {
	return &ValueResponseDTO{
		OfferID:      v.Offer.ID,
		AirlineName:  v.AirlineName,
		Duration:     v.Duration,
		PointsEarned: v.PointsEarned,
		Value:        v.Value,
	}
}

// ToRankResponseDTO builds the rank response from the input offers and the ranked result.
func ToRankResponseDTO(input []domain.FlightOffer, ranked []domain.ValuedOffer, sortBy domain.SortKey) *RankResponseDTO {
	if ranked == nil {
		ranked = []domain.ValuedOffer{}
	}
	return &RankResponseDTO{
		Metadata: RankMetadataDTO{
			TotalResults:      len(ranked),
			TotalBeforeFilter: len(input),
			SortBy:            sortBy,
			AvailableAirlines: usecase.AvailableAirlines(input),
		},
		Offers: ranked,
	}
}

// ToSortOptionsDTO returns the fixed sort option table.
func ToSortOptionsDTO() *SortOptionsDTO {
	options := make([]domain.SortOption, len(domain.SortOptions))
	copy(options, domain.SortOptions)
	return &SortOptionsDTO{
		Default: domain.DefaultSortOption().Key,
		Options: options,
	}
}

// ToAirlineDTO pairs a carrier code with its resolved name.
func ToAirlineDTO(code, name string) *AirlineDTO {
	code = strings.ToUpper(code)
	return &AirlineDTO{
		Code:  code,
		Name:  name,
		Known: name != "" && !strings.EqualFold(name, code),
	}
}
