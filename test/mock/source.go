// Package mock provides test doubles for the flight value ranking service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/test/testutil"
)

// Source is a configurable mock implementation of domain.OfferSource.
// It supports configurable delays, errors, panics and responses for testing
// various scenarios including timeouts and partial failures.
type Source struct {
	name      string
	offers    []domain.FlightOffer
	err       error
	delay     time.Duration
	panicMsg  string
	callCount int
	mu        sync.Mutex
}

// NewSource creates a new mock source with the given name.
// The source is configured using the builder pattern methods.
func NewSource(name string) *Source {
	return &Source{name: name}
}

// WithOffers configures the source to return the given offers.
func (s *Source) WithOffers(offers []domain.FlightOffer) *Source {
	s.offers = offers
	return s
}

// WithError configures the source to return the given error.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

// WithDelay configures the source to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.delay = d
	return s
}

// WithPanic configures the source to panic with msg when searched.
func (s *Source) WithPanic(msg string) *Source {
	s.panicMsg = msg
	return s
}

// Name returns the source's unique identifier.
func (s *Source) Name() string {
	return s.name
}

// Search implements domain.OfferSource.Search.
// It respects context cancellation, applies configured delay,
// and returns configured offers or error.
func (s *Source) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if s.err != nil {
		return nil, s.err
	}

	return s.offers, nil
}

// CallCount returns the number of times Search was called.
func (s *Source) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Reset resets the call count to zero.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Ensure Source implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Source)(nil)

// sampleCarriers cycles through carriers with distinct point values.
var sampleCarriers = []string{"AA", "UA", "DL", "B6", "WN", "AS"}

// SampleOffers returns count JFK-LAX offers for the given source name.
// Prices rise by 25.00 and departures by two hours per offer; every third
// offer has a stop in DEN.
func SampleOffers(source string, count int) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, count)
	base := time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		departure := base.Add(time.Duration(i*2) * time.Hour)
		arrival := departure.Add(6*time.Hour + 30*time.Minute)

		b := testutil.NewOffer(fmt.Sprintf("%s-%d", source, i+1)).
			Carrier(sampleCarriers[i%len(sampleCarriers)]).
			Price(fmt.Sprintf("%.2f", 300+float64(i)*25)).
			Departs(departure.Format("2006-01-02T15:04:05")).
			Arrives(arrival.Format("2006-01-02T15:04:05"))
		if i%3 == 2 {
			b = b.Route("JFK", "DEN", "LAX").Duration("PT8H15M")
		}
		offers[i] = b.Build()
	}

	return offers
}
