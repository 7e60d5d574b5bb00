package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/timeutil"
)

// OfferSearchUseCase defines the interface for offer search operations.
type OfferSearchUseCase interface {
	// Search queries all registered sources, values every offer, and returns the ranked result.
	// It applies the Scatter-Gather pattern with timeout handling.
	Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error)
}

// OfferCache stores the raw offers collected for a search.
// Valuations are never cached since rates may change between reads.
type OfferCache interface {
	Get(ctx context.Context, key string) ([]domain.FlightOffer, bool, error)
	Set(ctx context.Context, key string, offers []domain.FlightOffer) error
}

// offerSearchUseCase implements OfferSearchUseCase using the Scatter-Gather pattern.
type offerSearchUseCase struct {
	sources        []domain.OfferSource
	valuator       *Valuator
	cache          OfferCache
	clock          timeutil.Clock
	log            *logger.Logger
	globalTimeout  time.Duration
	sourceTimeout  time.Duration
	simulatedDelay time.Duration
}

// SearchDeps groups the collaborators of the search use case.
// Cache, Clock and Logger are optional.
type SearchDeps struct {
	Sources  []domain.OfferSource
	Valuator *Valuator
	Cache    OfferCache
	Clock    timeutil.Clock
	Logger   *logger.Logger
}

// NewOfferSearchUseCase creates an OfferSearchUseCase. If config is nil, default timeouts are used.
func NewOfferSearchUseCase(deps SearchDeps, config *Config) OfferSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.SourceTimeout > 0 {
			cfg.SourceTimeout = config.SourceTimeout
		}
		if config.SimulatedDelay > 0 {
			cfg.SimulatedDelay = config.SimulatedDelay
		}
	}

	if deps.Valuator == nil {
		deps.Valuator = NewValuator(nil)
	}
	if deps.Clock == nil {
		deps.Clock = timeutil.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	return &offerSearchUseCase{
		sources:        deps.Sources,
		valuator:       deps.Valuator,
		cache:          deps.Cache,
		clock:          deps.Clock,
		log:            deps.Logger,
		globalTimeout:  cfg.GlobalTimeout,
		sourceTimeout:  cfg.SourceTimeout,
		simulatedDelay: cfg.SimulatedDelay,
	}
}

// Search implements OfferSearchUseCase.Search.
func (uc *offerSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	start := uc.clock.Now()
	log := uc.log.For(ctx)

	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	if len(uc.sources) == 0 {
		return nil, domain.ErrAllSourcesFailed
	}

	// Sources share the global deadline; scoring and cache writes use ctx
	searchCtx, cancel := context.WithTimeout(ctx, uc.globalTimeout)
	defer cancel()

	if err := uc.wait(searchCtx); err != nil {
		return nil, err
	}

	metadata := domain.SearchMetadata{
		SearchID:       uuid.NewString(),
		SourcesQueried: len(uc.sources),
		SortBy:         domain.ParseSortOption(string(opts.SortBy.Key)).Key,
	}

	offers, cacheHit := uc.fromCache(searchCtx, criteria)
	if cacheHit {
		metadata.CacheHit = true
		metadata.SourcesSucceeded = len(uc.sources)
	} else {
		results := uc.gather(searchCtx, criteria)

		for _, result := range results {
			if !result.IsSuccess() {
				metadata.SourcesFailed++
				log.Warn().
					Err(result.Error).
					Str("source", result.Source).
					Bool("retryable", domain.IsRetryable(result.Error)).
					Int64("duration_ms", result.DurationMs).
					Msg("offer source failed")
				continue
			}
			metadata.SourcesSucceeded++
			offers = append(offers, result.Offers...)
		}

		if metadata.SourcesSucceeded == 0 {
			return nil, domain.ErrAllSourcesFailed
		}

		// Partial results are served but not cached
		if metadata.SourcesFailed == 0 {
			uc.toCache(ctx, criteria, offers)
		}
	}

	valued, err := ScoreOffers(ctx, uc.valuator, offers)
	if err != nil {
		return nil, fmt.Errorf("scoring offers: %w", err)
	}

	ranked := RankValued(valued, opts.Filters, opts.SortBy)

	metadata.TotalBeforeFilter = len(offers)
	metadata.SearchTimeMs = uc.clock.Now().Sub(start).Milliseconds()

	response := domain.NewSearchResponse(&criteria, ranked, metadata)

	log.Info().
		Str("search_id", metadata.SearchID).
		Str("origin", criteria.Origin).
		Str("destination", criteria.Destination).
		Int("results", response.Metadata.TotalResults).
		Int("sources_failed", metadata.SourcesFailed).
		Bool("cache_hit", metadata.CacheHit).
		Msg("offer search completed")

	return &response, nil
}

// wait applies the configured simulated delay, aborting if ctx ends first.
func (uc *offerSearchUseCase) wait(ctx context.Context) error {
	if uc.simulatedDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(uc.simulatedDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// gather queries every source concurrently and returns one result per source.
// Sources that have not answered when ctx ends are reported as timed out.
func (uc *offerSearchUseCase) gather(ctx context.Context, criteria domain.SearchCriteria) []domain.SourceResult {
	// Buffered channel to prevent goroutine blocking
	resultsChan := make(chan domain.SourceResult, len(uc.sources))

	var wg sync.WaitGroup
	for _, source := range uc.sources {
		wg.Add(1)
		go func(s domain.OfferSource) {
			defer wg.Done()
			resultsChan <- uc.querySource(ctx, s, criteria)
		}(source)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]domain.SourceResult, 0, len(uc.sources))
	answered := make(map[string]bool, len(uc.sources))

	for {
		select {
		case result, ok := <-resultsChan:
			if !ok {
				return results
			}
			answered[result.Source] = true
			results = append(results, result)
		case <-ctx.Done():
			for _, s := range uc.sources {
				if !answered[s.Name()] {
					results = append(results, domain.SourceResult{
						Source: s.Name(),
						Error:  domain.NewSourceTimeoutError(s.Name()),
					})
				}
			}
			return results
		}
	}
}

// querySource queries a single source with timeout and panic recovery.
func (uc *offerSearchUseCase) querySource(ctx context.Context, source domain.OfferSource, criteria domain.SearchCriteria) (result domain.SourceResult) {
	ctx, cancel := context.WithTimeout(ctx, uc.sourceTimeout)
	defer cancel()

	start := time.Now()
	name := source.Name()

	// Panic recovery to prevent one source from crashing the whole search
	defer func() {
		if r := recover(); r != nil {
			result = domain.SourceResult{
				Source:     name,
				Error:      domain.NewSourceError(name, fmt.Errorf("source panic: %v", r)),
				DurationMs: time.Since(start).Milliseconds(),
			}
		}
	}()

	offers, err := source.Search(ctx, criteria)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = domain.NewSourceTimeoutError(name)
	}

	return domain.SourceResult{
		Source:     name,
		Offers:     offers,
		Error:      err,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

func (uc *offerSearchUseCase) fromCache(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, bool) {
	if uc.cache == nil {
		return nil, false
	}

	offers, ok, err := uc.cache.Get(ctx, criteria.CacheKey())
	if err != nil {
		uc.log.For(ctx).Warn().Err(err).Str("key", criteria.CacheKey()).Msg("offer cache read failed")
		return nil, false
	}
	if ok {
		uc.log.Debug().Str("key", criteria.CacheKey()).Msg("offer cache hit")
	}
	return offers, ok
}

func (uc *offerSearchUseCase) toCache(ctx context.Context, criteria domain.SearchCriteria, offers []domain.FlightOffer) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, criteria.CacheKey(), offers); err != nil {
		uc.log.For(ctx).Warn().Err(err).Str("key", criteria.CacheKey()).Msg("offer cache write failed")
	}
}

// Ensure offerSearchUseCase implements OfferSearchUseCase at compile time.
var _ OfferSearchUseCase = (*offerSearchUseCase)(nil)
