package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankingFixture returns offers whose every sort key yields a different order:
//
//	id  price   duration  departs  arrives  stops  score
//	a   450.00  6h30m     08:00    14:30    0      70
//	b   199.00  9h05m     06:15    15:20    1      95
//	c   725.50  5h45m     11:00    16:45    0      40
//	d   310.00  12h       05:00    17:00    2      (unscored)
func rankingFixture() []domain.FlightOffer {
	return []domain.FlightOffer{
		testutil.NewOffer("a").Scored(70).Build(),
		testutil.NewOffer("b").Price("199.00").Duration("PT9H5M").Route("JFK", "DEN", "LAX").
			Departs("2025-01-15T06:15:00").Arrives("2025-01-15T15:20:00").Scored(95).Build(),
		testutil.NewOffer("c").Price("725.50").Duration("PT5H45M").
			Departs("2025-01-15T11:00:00").Arrives("2025-01-15T16:45:00").Scored(40).Build(),
		testutil.NewOffer("d").Price("310.00").Duration("PT12H").Route("JFK", "ORD", "DFW", "LAX").
			Departs("2025-01-15T05:00:00").Arrives("2025-01-15T17:00:00").Build(),
	}
}

// =====================================================
// SortOffers Tests
// =====================================================

func TestSortOffers_AllSortKeys(t *testing.T) {
	tests := []struct {
		key  domain.SortKey
		want []string
	}{
		{key: domain.SortRecommended, want: []string{"b", "a", "c", "d"}},
		{key: domain.SortPrice, want: []string{"b", "d", "a", "c"}},
		{key: domain.SortPriceHigh, want: []string{"c", "a", "d", "b"}},
		{key: domain.SortDuration, want: []string{"c", "a", "b", "d"}},
		{key: domain.SortDeparture, want: []string{"d", "b", "a", "c"}},
		{key: domain.SortArrival, want: []string{"a", "b", "c", "d"}},
		{key: domain.SortStops, want: []string{"a", "c", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			result := SortOffers(rankingFixture(), domain.ParseSortOption(string(tt.key)))
			assert.Equal(t, tt.want, testutil.OfferIDs(result))
		})
	}
}

func TestSortOffers_AdjacentPairsRespectKey(t *testing.T) {
	offers := rankingFixture()

	byPrice := SortOffers(offers, domain.ParseSortOption("price"))
	for i := 0; i+1 < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i].CashPrice(), byPrice[i+1].CashPrice())
	}

	byValue := SortOffers(offers, domain.ParseSortOption("recommended"))
	for i := 0; i+1 < len(byValue); i++ {
		assert.GreaterOrEqual(t, byValue[i].Score(), byValue[i+1].Score())
	}
}

func TestSortOffers_Empty(t *testing.T) {
	result := SortOffers([]domain.FlightOffer{}, domain.DefaultSortOption())
	assert.Empty(t, result)
}

func TestSortOffers_SingleOffer(t *testing.T) {
	offers := []domain.FlightOffer{testutil.NewOffer("only").Build()}

	result := SortOffers(offers, domain.ParseSortOption("price"))

	assert.Equal(t, []string{"only"}, testutil.OfferIDs(result))
}

func TestSortOffers_UnknownKeyFallsBackToRecommended(t *testing.T) {
	offers := rankingFixture()

	unknown := SortOffers(offers, domain.SortOption{Key: "cheapest-first"})
	recommended := SortOffers(offers, domain.DefaultSortOption())

	assert.Equal(t, testutil.OfferIDs(recommended), testutil.OfferIDs(unknown))
}

func TestSortOffers_DirectionComesFromKey(t *testing.T) {
	// A caller-supplied direction never overrides the fixed direction of a key.
	option := domain.SortOption{Key: domain.SortPrice, Direction: domain.SortDesc}

	result := SortOffers(rankingFixture(), option)

	assert.Equal(t, []string{"b", "d", "a", "c"}, testutil.OfferIDs(result))
}

func TestSortOffers_StableSort(t *testing.T) {
	offers := []domain.FlightOffer{
		testutil.NewOffer("first").Price("300.00").Scored(50).Build(),
		testutil.NewOffer("second").Price("300.00").Scored(50).Build(),
		testutil.NewOffer("third").Price("300.00").Scored(50).Build(),
	}

	for _, opt := range domain.SortOptions {
		t.Run(string(opt.Key), func(t *testing.T) {
			result := SortOffers(offers, opt)
			assert.Equal(t, []string{"first", "second", "third"}, testutil.OfferIDs(result))
		})
	}
}

func TestSortOffers_UnscoredSortsAsZero(t *testing.T) {
	offers := []domain.FlightOffer{
		testutil.NewOffer("unscored").Build(),
		testutil.NewOffer("zero").Scored(0).Build(),
		testutil.NewOffer("scored").Scored(1).Build(),
	}

	result := SortOffers(offers, domain.DefaultSortOption())

	assert.Equal(t, []string{"scored", "unscored", "zero"}, testutil.OfferIDs(result))
}

func TestSortOffers_UnparsableDepartureSortsFirst(t *testing.T) {
	offers := []domain.FlightOffer{
		testutil.NewOffer("dawn").Departs("2025-01-15T05:00:00").Build(),
		testutil.NewOffer("broken").Departs("").Build(),
	}

	result := SortOffers(offers, domain.ParseSortOption("departure"))

	assert.Equal(t, []string{"broken", "dawn"}, testutil.OfferIDs(result))
}

func TestSortOffers_NonFinitePricesSortAsZero(t *testing.T) {
	offers := []domain.FlightOffer{
		testutil.NewOffer("a").Price("300.00").Build(),
		testutil.NewOffer("b").Price("NaN").Build(),
		testutil.NewOffer("c").Price("100.00").Build(),
		testutil.NewOffer("d").Price("Infinity").Build(),
		testutil.NewOffer("e").Price("200.00").Build(),
	}

	cheapest := SortOffers(offers, domain.ParseSortOption("price"))
	assert.Equal(t, []string{"b", "d", "c", "e", "a"}, testutil.OfferIDs(cheapest))

	dearest := SortOffers(offers, domain.ParseSortOption("priceHigh"))
	assert.Equal(t, []string{"a", "e", "c", "b", "d"}, testutil.OfferIDs(dearest))
}

func TestSortOffers_DoesNotMutateOriginal(t *testing.T) {
	offers := rankingFixture()
	originalIDs := testutil.OfferIDs(offers)

	_ = SortOffers(offers, domain.ParseSortOption("price"))

	assert.Equal(t, originalIDs, testutil.OfferIDs(offers))
}

// =====================================================
// Rank Tests
// =====================================================

func TestRank_FiltersThenSorts(t *testing.T) {
	filters := &domain.SearchFilters{Stops: []domain.StopsBucket{domain.StopsNonstop, domain.StopsOne}}

	result := Rank(rankingFixture(), filters, domain.ParseSortOption("price"))

	assert.Equal(t, []string{"b", "a", "c"}, testutil.OfferIDs(result))
}

func TestRankValued_SortsOnUnderlyingOffer(t *testing.T) {
	valuator := NewValuator(nil)
	items := make([]domain.ValuedOffer, 0)
	for _, o := range rankingFixture() {
		items = append(items, valuator.Appraise(o))
	}

	result := RankValued(items, nil, domain.ParseSortOption("duration"))

	assert.Equal(t, []string{"c", "a", "b", "d"}, testutil.ValuedOfferIDs(result))
}

// =====================================================
// ScoreOffers Tests
// =====================================================

func TestScoreOffers_PositionallyAligned(t *testing.T) {
	valuator := NewValuator(nil)
	offers := rankingFixture()

	result, err := ScoreOffers(context.Background(), valuator, offers)

	require.NoError(t, err)
	require.Len(t, result, len(offers))
	for i, item := range result {
		assert.Equal(t, offers[i].ID, item.Offer.ID)
		require.NotNil(t, item.Offer.EstimatedValue)
		assert.Equal(t, item.Value.EstimatedValue, *item.Offer.EstimatedValue)
	}
}

func TestScoreOffers_ParallelMatchesSequential(t *testing.T) {
	valuator := NewValuator(nil)
	offers := make([]domain.FlightOffer, parallelScoreThreshold*3)
	for i := range offers {
		offers[i] = testutil.NewOffer(fmt.Sprintf("offer-%d", i)).
			Price(fmt.Sprintf("%d.00", 100+i*7)).
			Build()
	}

	result, err := ScoreOffers(context.Background(), valuator, offers)

	require.NoError(t, err)
	require.Len(t, result, len(offers))
	for i, item := range result {
		assert.Equal(t, offers[i].ID, item.Offer.ID)
		assert.Equal(t, valuator.Compute(offers[i]), item.Value)
	}
}

func TestScoreOffers_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	offers := make([]domain.FlightOffer, parallelScoreThreshold)
	for i := range offers {
		offers[i] = testutil.NewOffer(fmt.Sprintf("offer-%d", i)).Build()
	}

	result, err := ScoreOffers(ctx, NewValuator(nil), offers)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestScoreOffers_Empty(t *testing.T) {
	result, err := ScoreOffers(context.Background(), NewValuator(nil), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
}

// =====================================================
// Performance Tests
// =====================================================

func TestSortOffers_Performance(t *testing.T) {
	offers := make([]domain.FlightOffer, 1000)
	for i := range offers {
		offers[i] = testutil.NewOffer(fmt.Sprintf("perf-%d", i)).
			Price(fmt.Sprintf("%d.00", (i*7919)%1000+50)).
			Scored(i % 100).
			Build()
	}

	start := time.Now()
	for _, opt := range domain.SortOptions {
		result := SortOffers(offers, opt)
		require.Len(t, result, len(offers))
	}
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 500*time.Millisecond, "sorting 1000 offers by every key should be fast")
}
