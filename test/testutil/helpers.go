// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	data, err := os.ReadFile(TestDataPath(t, filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// TestDataPath returns the absolute path of a file in test/testdata.
func TestDataPath(t *testing.T, filename string) string {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	return filepath.Join(projectRoot, "test", "testdata", filename)
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// OfferBuilder builds FlightOffer fixtures.
// The zero configuration is an AA nonstop JFK-LAX economy offer for 450.00
// departing 2025-01-15 08:00 and arriving 14:30 (PT6H30M).
type OfferBuilder struct {
	id        string
	carrier   string
	total     string
	cabin     string
	duration  string
	route     []string
	departAt  string
	arriveAt  string
	synthetic bool
	score     *int
}

// NewOffer starts a builder for an offer with the given ID.
func NewOffer(id string) *OfferBuilder {
	return &OfferBuilder{
		id:       id,
		carrier:  "AA",
		total:    "450.00",
		cabin:    domain.CabinEconomy,
		duration: "PT6H30M",
		route:    []string{"JFK", "LAX"},
		departAt: "2025-01-15T08:00:00",
		arriveAt: "2025-01-15T14:30:00",
	}
}

// Carrier sets the validating and operating carrier.
func (b *OfferBuilder) Carrier(code string) *OfferBuilder {
	b.carrier = code
	return b
}

// Price sets the cash total as a decimal string.
func (b *OfferBuilder) Price(total string) *OfferBuilder {
	b.total = total
	return b
}

// Cabin sets the cabin of the first fare detail.
func (b *OfferBuilder) Cabin(cabin string) *OfferBuilder {
	b.cabin = cabin
	return b
}

// Duration sets the ISO-8601 itinerary duration.
func (b *OfferBuilder) Duration(iso string) *OfferBuilder {
	b.duration = iso
	return b
}

// Route sets the airports visited in order; n airports make n-1 segments.
func (b *OfferBuilder) Route(airports ...string) *OfferBuilder {
	b.route = airports
	return b
}

// Departs sets the first segment's departure timestamp.
func (b *OfferBuilder) Departs(at string) *OfferBuilder {
	b.departAt = at
	return b
}

// Arrives sets the last segment's arrival timestamp.
func (b *OfferBuilder) Arrives(at string) *OfferBuilder {
	b.arriveAt = at
	return b
}

// Synthetic marks the offer as a synthetic itinerary.
func (b *OfferBuilder) Synthetic() *OfferBuilder {
	b.synthetic = true
	return b
}

// Scored attaches an estimated value to the offer.
func (b *OfferBuilder) Scored(score int) *OfferBuilder {
	b.score = &score
	return b
}

// Build returns the offer.
func (b *OfferBuilder) Build() domain.FlightOffer {
	segments := make([]domain.Segment, 0, len(b.route))
	for i := 0; i+1 < len(b.route); i++ {
		segments = append(segments, domain.Segment{
			Departure:   domain.Endpoint{IATACode: b.route[i]},
			Arrival:     domain.Endpoint{IATACode: b.route[i+1]},
			CarrierCode: b.carrier,
			Number:      "100",
			Aircraft:    domain.Aircraft{Code: "321"},
		})
	}
	if len(segments) > 0 {
		segments[0].Departure.At = b.departAt
		segments[len(segments)-1].Arrival.At = b.arriveAt
	}

	source := domain.SourceGDS
	if b.synthetic {
		source = domain.SourceSynthetic
	}

	offer := domain.FlightOffer{
		ID:                     b.id,
		Source:                 source,
		IsSynthetic:            b.synthetic,
		OneWay:                 true,
		Itineraries:            []domain.Itinerary{{Duration: b.duration, Segments: segments}},
		Price:                  domain.Price{Currency: "USD", Total: b.total, Base: b.total},
		PricingOptions:         domain.PricingOptions{FareType: []string{"PUBLISHED"}, IncludedCheckedBagsOnly: true},
		ValidatingAirlineCodes: []string{b.carrier},
		TravelerPricings: []domain.TravelerPricing{{
			TravelerID:   "1",
			FareOption:   "STANDARD",
			TravelerType: "ADULT",
			Price:        domain.Price{Currency: "USD", Total: b.total},
			FareDetailsBySegment: []domain.FareDetails{{
				SegmentID: "1",
				Cabin:     b.cabin,
			}},
		}},
	}
	if b.score != nil {
		offer = offer.WithEstimatedValue(*b.score)
	}
	return offer
}

// OfferIDs returns the IDs of offers in order.
func OfferIDs(offers []domain.FlightOffer) []string {
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}

// ValuedOfferIDs returns the IDs of valued offers in order.
func ValuedOfferIDs(items []domain.ValuedOffer) []string {
	ids := make([]string, len(items))
	for i, v := range items {
		ids[i] = v.Offer.ID
	}
	return ids
}
