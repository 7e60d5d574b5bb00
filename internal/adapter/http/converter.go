package http

import (
	"strings"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

// ToDomainCriteria converts a SearchOffersRequest to domain.SearchCriteria.
func ToDomainCriteria(req *SearchOffersRequest) domain.SearchCriteria {
	criteria := domain.SearchCriteria{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		Passengers:    req.Passengers,
		CabinClass:    req.CabinClass,
	}
	criteria.SetDefaults()
	return criteria
}

// ToDomainFilters converts a FiltersDTO to domain.SearchFilters.
func ToDomainFilters(dto *FiltersDTO) *domain.SearchFilters {
	if dto == nil {
		return nil
	}

	filters := &domain.SearchFilters{
		PriceRange:          toDomainRange(dto.PriceRange),
		DepartureTimeWindow: toDomainRange(dto.DepartureTimeWindow),
		ArrivalTimeWindow:   toDomainRange(dto.ArrivalTimeWindow),
		DurationRange:       toDomainRange(dto.DurationRange),
		Airlines:            dto.Airlines,
		CabinClass:          dto.CabinClass,
	}

	if len(dto.Stops) > 0 {
		filters.Stops = make([]domain.StopsBucket, len(dto.Stops))
		for i, s := range dto.Stops {
			filters.Stops[i] = domain.StopsBucket(s)
		}
	}

	if filters.IsEmpty() {
		return nil
	}
	return filters
}

func toDomainRange(dto *RangeDTO) *domain.Range {
	if dto == nil {
		return nil
	}
	return domain.NewRange(dto.Min, dto.Max)
}

// ToDomainSortOption resolves a sort key. Empty or unknown keys give the recommended ordering.
func ToDomainSortOption(sortBy string) domain.SortOption {
	return domain.ParseSortOption(strings.TrimSpace(sortBy))
}

// ToSearchOptions converts the filter and sort fields of a request to usecase.SearchOptions.
func ToSearchOptions(filters *FiltersDTO, sortBy string) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToDomainFilters(filters),
		SortBy:  ToDomainSortOption(sortBy),
	}
}
