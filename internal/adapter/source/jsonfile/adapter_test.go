package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offerJSON = `{
	"id": %q,
	"source": %q,
	"itineraries": [{
		"duration": "PT6H30M",
		"segments": [{
			"departure": {"iataCode": %q, "at": %q},
			"arrival": {"iataCode": %q, "at": "2025-01-15T14:30:00"},
			"carrierCode": "AA",
			"number": "1",
			"aircraft": {"code": "321"},
			"duration": "PT6H30M",
			"numberOfStops": 0
		}]
	}],
	"price": {"currency": "USD", "total": "450.00"},
	"validatingAirlineCodes": ["AA"],
	"travelerPricings": [{"travelerId": "1", "fareDetailsBySegment": [{"segmentId": "1", "cabin": "ECONOMY"}]}]
}`

// TestAdapter_Name tests the Name method.
func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter("", nil)
	assert.Equal(t, "offers_file", adapter.Name())
}

// TestAdapter_ImplementsInterface ensures Adapter implements OfferSource.
func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.OfferSource = (*Adapter)(nil)
}

// TestAdapter_Search tests the Search method with various file layouts.
func TestAdapter_Search(t *testing.T) {
	tempDir := t.TempDir()
	jfkLax := domain.SearchCriteria{Origin: "JFK", Destination: "LAX", DepartureDate: "2025-01-15"}

	tests := []struct {
		name          string
		jsonContent   string
		criteria      domain.SearchCriteria
		wantIDs       []string
		wantErr       bool
		wantRetryable bool
	}{
		{
			name:        "bare array",
			jsonContent: "[" + sprintfOffer("a-1", "GDS", "JFK", "2025-01-15T08:00:00", "LAX") + "]",
			criteria:    jfkLax,
			wantIDs:     []string{"a-1"},
		},
		{
			name:        "data envelope",
			jsonContent: `{"data": [` + sprintfOffer("e-1", "GDS", "JFK", "2025-01-15T08:00:00", "LAX") + `]}`,
			criteria:    jfkLax,
			wantIDs:     []string{"e-1"},
		},
		{
			name: "filters by route and date",
			jsonContent: "[" +
				sprintfOffer("keep", "GDS", "JFK", "2025-01-15T08:00:00", "LAX") + "," +
				sprintfOffer("wrong-origin", "GDS", "EWR", "2025-01-15T08:00:00", "LAX") + "," +
				sprintfOffer("wrong-destination", "GDS", "JFK", "2025-01-15T08:00:00", "SFO") + "," +
				sprintfOffer("wrong-date", "GDS", "JFK", "2025-01-16T08:00:00", "LAX") + "]",
			criteria: jfkLax,
			wantIDs:  []string{"keep"},
		},
		{
			name:        "route match is case-insensitive",
			jsonContent: "[" + sprintfOffer("lower", "GDS", "jfk", "2025-01-15T08:00:00", "lax") + "]",
			criteria:    jfkLax,
			wantIDs:     []string{"lower"},
		},
		{
			name: "empty criteria keeps every valid offer",
			jsonContent: "[" +
				sprintfOffer("one", "GDS", "JFK", "2025-01-15T08:00:00", "LAX") + "," +
				sprintfOffer("two", "GDS", "ORD", "2025-03-01T08:00:00", "MIA") + "]",
			criteria: domain.SearchCriteria{},
			wantIDs:  []string{"one", "two"},
		},
		{
			name: "skips offers without segments or price",
			jsonContent: `[` + sprintfOffer("good", "GDS", "JFK", "2025-01-15T08:00:00", "LAX") + `,
				{"id": "no-segments", "price": {"total": "100.00"}, "itineraries": []},
				{"id": "", "price": {"total": "100.00"}}]`,
			criteria: domain.SearchCriteria{},
			wantIDs:  []string{"good"},
		},
		{
			name:        "empty array returns empty slice",
			jsonContent: `[]`,
			criteria:    jfkLax,
			wantIDs:     []string{},
		},
		{
			name:          "malformed JSON returns error",
			jsonContent:   `{ invalid json }`,
			criteria:      jfkLax,
			wantErr:       true,
			wantRetryable: false,
		},
		{
			name:          "empty file returns error",
			jsonContent:   "  \n",
			criteria:      jfkLax,
			wantErr:       true,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.jsonContent), 0644))

			adapter := NewAdapter(path, nil)
			offers, err := adapter.Search(context.Background(), tt.criteria)

			if tt.wantErr {
				require.Error(t, err)
				var sourceErr *domain.SourceError
				require.True(t, errors.As(err, &sourceErr), "Error should be SourceError")
				assert.Equal(t, SourceName, sourceErr.Source)
				assert.Equal(t, tt.wantRetryable, sourceErr.Retryable)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, testutil.OfferIDs(offers))
		})
	}
}

func TestAdapter_Search_SourceTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")
	content := `[` +
		sprintfOffer("untagged", "", "JFK", "2025-01-15T08:00:00", "LAX") + `,` +
		sprintfOffer("synthetic", "synthetic", "JFK", "2025-01-15T08:00:00", "LAX") + `]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	offers, err := NewAdapter(path, nil).Search(context.Background(), domain.SearchCriteria{})

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, domain.SourceGDS, offers[0].Source)
	assert.False(t, offers[0].IsSynthetic)
	assert.Equal(t, domain.SourceSynthetic, offers[1].Source)
	assert.True(t, offers[1].IsSynthetic)
}

// TestAdapter_Search_FileNotFound tests error handling for missing files.
func TestAdapter_Search_FileNotFound(t *testing.T) {
	adapter := NewAdapter("/nonexistent/path/to/offers.json", nil)
	offers, err := adapter.Search(context.Background(), domain.SearchCriteria{})

	require.Error(t, err)
	assert.Empty(t, offers)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	var sourceErr *domain.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.False(t, sourceErr.Retryable, "a missing file will not appear on retry")
}

// TestAdapter_Search_ContextCancellation tests context cancellation handling.
func TestAdapter_Search_ContextCancellation(t *testing.T) {
	adapter := NewAdapter(testutil.TestDataPath(t, "offers.json"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	offers, err := adapter.Search(ctx, domain.SearchCriteria{})

	require.Error(t, err)
	assert.Empty(t, offers)

	var sourceErr *domain.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, context.Canceled, sourceErr.Err)
	assert.False(t, sourceErr.Retryable)
}

// TestAdapter_Search_WithTestdataFile reads the shared fixture.
func TestAdapter_Search_WithTestdataFile(t *testing.T) {
	adapter := NewAdapter(testutil.TestDataPath(t, "offers.json"), nil)

	offers, err := adapter.Search(context.Background(), domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2025-01-15",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"file-1", "file-2", "file-3"}, testutil.OfferIDs(offers))
	assert.True(t, offers[2].IsSynthetic)
}

func sprintfOffer(id, source, from, departAt, to string) string {
	return fmt.Sprintf(offerJSON, id, source, from, departAt, to)
}
