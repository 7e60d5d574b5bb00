// Package main is the entry point for the flight value ranking service.
//
//	@title						Flight Value Ranking API
//	@version					1.0.0
//	@description				Scores flight offers by value, ranks them, and compares up to three side by side.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-value-ranking/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-value-ranking/docs"

	// Application layers
	"github.com/flight-search/flight-value-ranking/internal/adapter/cache"
	offerhttp "github.com/flight-search/flight-value-ranking/internal/adapter/http"
	"github.com/flight-search/flight-value-ranking/internal/adapter/http/middleware"
	"github.com/flight-search/flight-value-ranking/internal/adapter/ratesfile"
	"github.com/flight-search/flight-value-ranking/internal/adapter/source/demo"
	"github.com/flight-search/flight-value-ranking/internal/adapter/source/jsonfile"
	"github.com/flight-search/flight-value-ranking/internal/config"
	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-value-ranking/internal/scheduler"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 5 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New(cfg.Logging)
	logger.SetGlobal(log)

	logger.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources := setupSources(cfg, log)

	rates := usecase.NewRatesHolder(nil)
	reloader, err := setupRates(ctx, cfg, rates, log)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load rates")
	}

	clock := timeutil.NewRealClock()
	offerCache, closeCache, err := setupCache(ctx, cfg, clock, log)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up offer cache")
	}

	valuator := usecase.NewValuator(rates)
	searchUseCase := usecase.NewOfferSearchUseCase(usecase.SearchDeps{
		Sources:  sources,
		Valuator: valuator,
		Cache:    offerCache,
		Clock:    clock,
		Logger:   log,
	}, &usecase.Config{
		GlobalTimeout:  cfg.Timeouts.GlobalSearch,
		SourceTimeout:  cfg.Timeouts.PerSource,
		SimulatedDelay: cfg.Search.SimulatedDelay,
	})
	valuationUseCase := usecase.NewValuationUseCase(valuator)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()

	middleware.Setup(e, log.Logger)
	offerhttp.RegisterRoutes(e, offerhttp.NewOfferHandler(searchUseCase, valuationUseCase, len(sources)))
	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           corsHandler(cfg).Handler(e),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("address", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}
	if reloader != nil {
		reloader.Stop()
	}
	if err := closeCache(); err != nil {
		logger.Error().Err(err).Msg("Error closing offer cache")
	}

	logger.Info().Msg("Server stopped")
}

// setupSources builds the configured offer sources.
func setupSources(cfg *config.Config, log *logger.Logger) []domain.OfferSource {
	registry := domain.NewSourceRegistry()
	if cfg.Sources.DemoEnabled {
		registry.Register(demo.NewAdapter())
	}
	if cfg.Sources.OffersFile != "" {
		registry.Register(jsonfile.NewAdapter(cfg.Sources.OffersFile, log))
	}

	logger.Info().Strs("sources", registry.Names()).Msg("Offer sources registered")
	return registry.GetAll()
}

// setupRates starts the rate reloader when a rates file is configured.
// Without one the built-in tables stay in place and no reloader runs.
func setupRates(ctx context.Context, cfg *config.Config, holder *usecase.RatesHolder, log *logger.Logger) (*scheduler.RatesReloader, error) {
	if cfg.Rates.File == "" {
		return nil, nil
	}

	path := cfg.Rates.File
	reloader := scheduler.New(cfg.Rates.ReloadSchedule, func() (*usecase.Rates, error) {
		return ratesfile.Load(path)
	}, holder, log)

	if err := reloader.Start(ctx); err != nil {
		return nil, err
	}
	return reloader, nil
}

// setupCache returns the offer cache and a function releasing it.
// A nil cache disables caching.
func setupCache(ctx context.Context, cfg *config.Config, clock timeutil.Clock, log *logger.Logger) (usecase.OfferCache, func() error, error) {
	noop := func() error { return nil }

	if !cfg.Cache.Enabled {
		log.Info().Msg("Offer cache disabled")
		return nil, noop, nil
	}

	if cfg.UsesRedis() {
		pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		defer cancel()

		client, err := cache.NewRedisClient(pingCtx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Dur("ttl", cfg.Cache.TTL).Msg("Offer cache backed by redis")
		return cache.NewRedis(client, cfg.Cache.TTL), client.Close, nil
	}

	mem := cache.NewMemory(cfg.Cache.TTL, clock)
	ticker := time.NewTicker(cfg.Cache.TTL)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := mem.Sweep(); n > 0 {
					log.Debug().Int("evicted", n).Msg("Offer cache swept")
				}
			}
		}
	}()

	log.Info().Dur("ttl", cfg.Cache.TTL).Msg("Offer cache in memory")
	return mem, func() error {
		ticker.Stop()
		return nil
	}, nil
}

// corsHandler allows the configured browser origins to call the API.
func corsHandler(cfg *config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", echo.HeaderXRequestID},
		ExposedHeaders: []string{echo.HeaderXRequestID},
	})
}
