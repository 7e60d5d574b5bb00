// Package scheduler wires up the cron job that periodically reloads the
// valuation rate tables.
package scheduler

import (
	"context"
	"fmt"

	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
	"github.com/robfig/cron/v3"
)

// DefaultSpec reloads rates hourly.
const DefaultSpec = "@every 1h"

// LoadFunc produces a fresh, validated rate snapshot.
type LoadFunc func() (*usecase.Rates, error)

// RatesReloader wraps robfig/cron and republishes rates into a holder.
// A failed reload keeps the snapshot already published.
type RatesReloader struct {
	cron   *cron.Cron
	spec   string
	load   LoadFunc
	holder *usecase.RatesHolder
	log    *logger.Logger
}

// New creates a reloader firing on the given cron spec (DefaultSpec when empty).
func New(spec string, load LoadFunc, holder *usecase.RatesHolder, log *logger.Logger) *RatesReloader {
	if spec == "" {
		spec = DefaultSpec
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("scheduler")

	cl := cronLogger{log: log}
	return &RatesReloader{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		spec:   spec,
		load:   load,
		holder: holder,
		log:    log,
	}
}

// Start loads the rates once, registers the job and starts the scheduler.
// The first load runs synchronously so a broken file fails startup.
func (r *RatesReloader) Start(ctx context.Context) error {
	if err := r.Reload(); err != nil {
		return err
	}

	_, err := r.cron.AddFunc(r.spec, func() {
		if ctx.Err() != nil {
			return
		}
		if err := r.Reload(); err != nil {
			r.log.Warn().Err(err).Msg("rates reload failed, keeping previous tables")
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", r.spec, err)
	}

	r.cron.Start()
	r.log.Info().Str("spec", r.spec).Msg("rates reload scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running reload to finish.
func (r *RatesReloader) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info().Msg("rates reload stopped")
}

// Reload loads rates and publishes them.
func (r *RatesReloader) Reload() error {
	rates, err := r.load()
	if err != nil {
		return fmt.Errorf("loading rates: %w", err)
	}

	r.holder.Replace(rates)
	r.log.Info().
		Int("airlines", len(rates.PointValues)).
		Int("domestic_airports", len(rates.DomesticAirports)).
		Msg("rates reloaded")
	return nil
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

var _ cron.Logger = cronLogger{}
