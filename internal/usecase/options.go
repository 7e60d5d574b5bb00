package usecase

import (
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// SearchOptions contains optional parameters for an offer search.
type SearchOptions struct {
	// Filters contains optional filtering criteria to apply to results
	Filters *domain.SearchFilters

	// SortBy specifies how to sort the results (default: recommended)
	SortBy domain.SortOption
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Filters: nil,
		SortBy:  domain.DefaultSortOption(),
	}
}

// Default timeout values.
const (
	DefaultGlobalTimeout = 5 * time.Second
	DefaultSourceTimeout = 2 * time.Second
)

// Config contains configuration options for the search use case.
type Config struct {
	GlobalTimeout time.Duration
	SourceTimeout time.Duration

	// SimulatedDelay holds every search for a fixed time before sources are queried
	SimulatedDelay time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout: DefaultGlobalTimeout,
		SourceTimeout: DefaultSourceTimeout,
	}
}
