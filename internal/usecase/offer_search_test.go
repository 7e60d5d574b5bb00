package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-value-ranking/test/mock"
	"github.com/flight-search/flight-value-ranking/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2025-01-15",
	}
}

// setupMockSource creates a mock source with standard behavior.
func setupMockSource(ctrl *gomock.Controller, name string, offers []domain.FlightOffer, err error) *domain.MockOfferSource {
	m := domain.NewMockOfferSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	m.EXPECT().Search(gomock.Any(), gomock.Any()).Return(offers, err).AnyTimes()
	return m
}

// setupMockSourceWithDelay creates a mock source that simulates network delay.
func setupMockSourceWithDelay(ctrl *gomock.Controller, name string, offers []domain.FlightOffer, delay time.Duration) *domain.MockOfferSource {
	m := domain.NewMockOfferSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	m.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
			select {
			case <-time.After(delay):
				return offers, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	).AnyTimes()
	return m
}

// fakeCache is an in-process OfferCache that records writes.
type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]domain.FlightOffer
	sets   int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]domain.FlightOffer)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]domain.FlightOffer, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	offers, ok := c.data[key]
	return offers, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, offers []domain.FlightOffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = offers
	return nil
}

func (c *fakeCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

func TestNewOfferSearchUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := setupMockSource(ctrl, "test", nil, nil)

	tests := []struct {
		name    string
		sources []domain.OfferSource
		config  *Config
	}{
		{name: "with default config", sources: []domain.OfferSource{src}, config: nil},
		{
			name:    "with custom config",
			sources: []domain.OfferSource{src},
			config:  &Config{GlobalTimeout: 10 * time.Second, SourceTimeout: 3 * time.Second},
		},
		{name: "with empty sources", sources: []domain.OfferSource{}, config: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewOfferSearchUseCase(SearchDeps{Sources: tt.sources}, tt.config)
			require.NotNil(t, uc)
		})
	}
}

func TestSearch_MultipleSourcesSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{
		setupMockSource(ctrl, "gds", mock.SampleOffers("gds", 2), nil),
		setupMockSource(ctrl, "synthetic", mock.SampleOffers("synthetic", 3), nil),
	}
	clock := timeutil.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources, Clock: clock}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.Offers, 5)
	assert.Equal(t, 5, resp.Metadata.TotalResults)
	assert.Equal(t, 5, resp.Metadata.TotalBeforeFilter)
	assert.Equal(t, 2, resp.Metadata.SourcesQueried)
	assert.Equal(t, 2, resp.Metadata.SourcesSucceeded)
	assert.Equal(t, 0, resp.Metadata.SourcesFailed)
	assert.Equal(t, domain.SortRecommended, resp.Metadata.SortBy)
	assert.Equal(t, int64(0), resp.Metadata.SearchTimeMs)
	assert.NotEmpty(t, resp.Metadata.SearchID)
	assert.False(t, resp.Metadata.CacheHit)

	// Defaults are applied to the echoed criteria
	assert.Equal(t, 1, resp.SearchCriteria.Passengers)
	assert.Equal(t, domain.CabinEconomy, resp.SearchCriteria.CabinClass)

	for i, item := range resp.Offers {
		require.NotNil(t, item.Offer.EstimatedValue)
		assert.Equal(t, item.Value.EstimatedValue, *item.Offer.EstimatedValue)
		assert.NotEmpty(t, item.AirlineName)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Offers[i-1].Value.EstimatedValue, item.Value.EstimatedValue)
		}
	}
}

func TestSearch_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var logs bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "test"}, &logs)
	cache := newFakeCache()

	sources := []domain.OfferSource{
		setupMockSource(ctrl, "healthy", mock.SampleOffers("healthy", 2), nil),
		setupMockSource(ctrl, "broken", nil, errors.New("connection refused")),
	}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources, Cache: cache, Logger: log}, nil)
	ctx := logger.ContextWithRequestID(context.Background(), "req-7")
	resp, err := uc.Search(ctx, validCriteria(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 2)
	assert.Equal(t, 1, resp.Metadata.SourcesSucceeded)
	assert.Equal(t, 1, resp.Metadata.SourcesFailed)
	assert.Equal(t, 0, cache.setCount(), "partial results are not cached")
	assert.Contains(t, logs.String(), `"source":"broken"`)
	assert.Contains(t, logs.String(), "offer source failed")
	assert.Contains(t, logs.String(), `"request_id":"req-7"`)
}

func TestSearch_AllSourcesFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{
		setupMockSource(ctrl, "a", nil, errors.New("boom")),
		setupMockSource(ctrl, "b", nil, domain.NewSourceUnavailableError("b")),
	}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
}

func TestSearch_NoSources(t *testing.T) {
	uc := NewOfferSearchUseCase(SearchDeps{}, nil)

	_, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
}

func TestSearch_EmptyResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{setupMockSource(ctrl, "empty", []domain.FlightOffer{}, nil)}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.NotNil(t, resp.Offers)
	assert.Empty(t, resp.Offers)
	assert.Equal(t, 0, resp.Metadata.TotalResults)
}

func TestSearch_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Search must never reach the source
	src := domain.NewMockOfferSource(ctrl)
	src.EXPECT().Name().Return("never").AnyTimes()

	uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}}, nil)

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		opts     SearchOptions
	}{
		{
			name:     "missing origin",
			criteria: domain.SearchCriteria{Destination: "LAX", DepartureDate: "2025-01-15"},
		},
		{
			name:     "unknown cabin",
			criteria: domain.SearchCriteria{Origin: "JFK", Destination: "LAX", DepartureDate: "2025-01-15", CabinClass: "BASIC"},
		},
		{
			name:     "inverted price range",
			criteria: validCriteria(),
			opts:     SearchOptions{Filters: &domain.SearchFilters{PriceRange: domain.NewRange(500, 100)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Search(context.Background(), tt.criteria, tt.opts)
			assert.True(t, domain.IsInvalidRequest(err), "expected invalid request, got %v", err)
		})
	}
}

func TestSearch_SourceTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{
		setupMockSource(ctrl, "fast", mock.SampleOffers("fast", 1), nil),
		setupMockSourceWithDelay(ctrl, "slow", mock.SampleOffers("slow", 1), time.Second),
	}
	cfg := &Config{GlobalTimeout: 2 * time.Second, SourceTimeout: 50 * time.Millisecond}

	start := time.Now()
	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, cfg)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, []string{"fast-1"}, testutil.ValuedOfferIDs(resp.Offers))
	assert.Equal(t, 1, resp.Metadata.SourcesFailed)
	assert.Less(t, elapsed, 500*time.Millisecond, "search should not wait for the slow source")
}

func TestSearch_GlobalTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{
		setupMockSourceWithDelay(ctrl, "slow-1", mock.SampleOffers("slow-1", 1), time.Second),
		setupMockSourceWithDelay(ctrl, "slow-2", mock.SampleOffers("slow-2", 1), time.Second),
	}
	cfg := &Config{GlobalTimeout: 100 * time.Millisecond, SourceTimeout: 5 * time.Second}

	start := time.Now()
	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, cfg)
	_, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSearch_SourcePanic(t *testing.T) {
	sources := []domain.OfferSource{
		mock.NewSource("stable").WithOffers(mock.SampleOffers("stable", 2)),
		mock.NewSource("crashing").WithPanic("nil map write"),
	}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 2)
	assert.Equal(t, 1, resp.Metadata.SourcesFailed)
}

func TestSearch_SimulatedDelay(t *testing.T) {
	src := mock.NewSource("demo").WithOffers(mock.SampleOffers("demo", 1))

	t.Run("delay completes within deadline", func(t *testing.T) {
		cfg := &Config{GlobalTimeout: time.Second, SimulatedDelay: 30 * time.Millisecond}
		uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}}, cfg)

		start := time.Now()
		resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

		require.NoError(t, err)
		assert.Len(t, resp.Offers, 1)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("delay longer than deadline aborts", func(t *testing.T) {
		src.Reset()
		cfg := &Config{GlobalTimeout: 20 * time.Millisecond, SimulatedDelay: time.Second}
		uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}}, cfg)

		_, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 0, src.CallCount())
	})
}

func TestSearch_ContextCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := []domain.OfferSource{
		setupMockSourceWithDelay(ctrl, "slow", mock.SampleOffers("slow", 1), time.Second),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	_, err := uc.Search(ctx, validCriteria(), DefaultSearchOptions())

	assert.Error(t, err)
}

func TestSearch_FilterAndSort(t *testing.T) {
	sources := []domain.OfferSource{
		mock.NewSource("gds").WithOffers(mock.SampleOffers("gds", 6)),
	}

	opts := SearchOptions{
		Filters: &domain.SearchFilters{Stops: []domain.StopsBucket{domain.StopsNonstop}},
		SortBy:  domain.ParseSortOption("priceHigh"),
	}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), opts)

	require.NoError(t, err)
	// Offers 3 and 6 connect in DEN
	assert.Equal(t, []string{"gds-5", "gds-4", "gds-2", "gds-1"}, testutil.ValuedOfferIDs(resp.Offers))
	assert.Equal(t, 4, resp.Metadata.TotalResults)
	assert.Equal(t, 6, resp.Metadata.TotalBeforeFilter)
	assert.Equal(t, domain.SortPriceHigh, resp.Metadata.SortBy)
}

func TestSearch_UnknownSortKeyReportsRecommended(t *testing.T) {
	sources := []domain.OfferSource{mock.NewSource("gds").WithOffers(mock.SampleOffers("gds", 2))}

	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), SearchOptions{SortBy: domain.SortOption{Key: "bogus"}})

	require.NoError(t, err)
	assert.Equal(t, domain.SortRecommended, resp.Metadata.SortBy)
}

func TestSearch_CachesCompleteResults(t *testing.T) {
	src := mock.NewSource("gds").WithOffers(mock.SampleOffers("gds", 3))
	cache := newFakeCache()

	uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}, Cache: cache}, nil)

	first, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
	assert.False(t, first.Metadata.CacheHit)
	assert.Equal(t, 1, cache.setCount())

	second, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, 1, src.CallCount(), "cache hit must not query sources")
	assert.Equal(t, testutil.ValuedOfferIDs(first.Offers), testutil.ValuedOfferIDs(second.Offers))
}

func TestSearch_CacheHitRevaluesWithCurrentRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := domain.NewMockOfferSource(ctrl)
	src.EXPECT().Name().Return("gds").AnyTimes()

	criteria := validCriteria()
	criteria.SetDefaults()
	cache := newFakeCache()
	cache.data[criteria.CacheKey()] = []domain.FlightOffer{testutil.NewOffer("cached").Build()}

	holder := NewRatesHolder(nil)
	uc := NewOfferSearchUseCase(SearchDeps{
		Sources:  []domain.OfferSource{src},
		Valuator: NewValuator(holder),
		Cache:    cache,
	}, nil)

	before, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, before.Offers, 1)

	cheaper := DefaultRates()
	cheaper.PointValues["AA"] = 1.0
	holder.Replace(cheaper)

	after, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
	assert.Greater(t, after.Offers[0].Value.EstimatedValue, before.Offers[0].Value.EstimatedValue)
}

func TestSearch_CacheReadErrorFallsThrough(t *testing.T) {
	src := mock.NewSource("gds").WithOffers(mock.SampleOffers("gds", 1))
	cache := newFakeCache()
	cache.getErr = errors.New("redis: connection refused")

	uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}, Cache: cache}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.False(t, resp.Metadata.CacheHit)
	assert.Equal(t, 1, src.CallCount())
}

func TestSearch_VerifyCriteriaPassedCorrectly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expected := domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2025-01-15",
		Passengers:    2,
		CabinClass:    domain.CabinBusiness,
	}

	src := domain.NewMockOfferSource(ctrl)
	src.EXPECT().Name().Return("verify").AnyTimes()
	src.EXPECT().Search(gomock.Any(), expected).Return([]domain.FlightOffer{}, nil).Times(1)

	request := expected
	request.CabinClass = "business"

	uc := NewOfferSearchUseCase(SearchDeps{Sources: []domain.OfferSource{src}}, nil)
	_, err := uc.Search(context.Background(), request, DefaultSearchOptions())

	require.NoError(t, err)
}

func TestSearch_ConcurrentSourceCalls(t *testing.T) {
	sources := make([]domain.OfferSource, 0, 5)
	for _, name := range []string{"s1", "s2", "s3", "s4", "s5"} {
		sources = append(sources, mock.NewSource(name).
			WithOffers(mock.SampleOffers(name, 1)).
			WithDelay(100*time.Millisecond))
	}

	start := time.Now()
	uc := NewOfferSearchUseCase(SearchDeps{Sources: sources}, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Len(t, resp.Offers, 5)
	// Sequential calls would take 500ms
	assert.Less(t, elapsed, 300*time.Millisecond)
}

func TestDefaultSearchOptions(t *testing.T) {
	opts := DefaultSearchOptions()
	assert.Nil(t, opts.Filters)
	assert.Equal(t, domain.SortRecommended, opts.SortBy.Key)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultGlobalTimeout, cfg.GlobalTimeout)
	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)
	assert.Zero(t, cfg.SimulatedDelay)
}
