// Package retry re-runs a failing operation with exponential backoff, bounded
// by attempts and by the caller's context.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Config controls attempts and backoff.
type Config struct {
	// MaxAttempts counts the first call; values below 1 mean a single attempt
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// JitterFactor adds up to this fraction of the delay at random (0.0 to 1.0)
	JitterFactor float64

	// RetryIf decides whether an error is worth another attempt.
	// Nil retries everything except Permanent errors.
	RetryIf func(error) bool

	// OnRetry runs before each backoff sleep with the failed attempt number.
	OnRetry func(attempt int, err error)
}

// SourceConfig suits offer sources backed by local files or nearby services:
// few attempts with short waits, since a search runs under a tight deadline.
var SourceConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 20 * time.Millisecond,
	MaxDelay:     200 * time.Millisecond,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// Do calls fn until it succeeds, the attempts run out, the error is not
// retryable, or ctx ends. On failure it returns the last error from fn, or
// the context error when ctx ended first.
func Do[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	attempts := max(cfg.MaxAttempts, 1)
	retryable := cfg.RetryIf
	if retryable == nil {
		retryable = func(err error) bool { return !IsPermanent(err) }
	}

	var (
		result T
		err    error
	)
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = fn()
		if err == nil || attempt == attempts || !retryable(err) {
			return result, err
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		timer := time.NewTimer(backoff(delay, cfg.MaxDelay, cfg.JitterFactor))
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}
}

// backoff jitters delay and caps it at maxDelay.
func backoff(delay, maxDelay time.Duration, jitterFactor float64) time.Duration {
	d := delay + time.Duration(rand.Float64()*float64(delay)*jitterFactor)
	if maxDelay > 0 && d > maxDelay {
		return maxDelay
	}
	return d
}

// Permanent marks an error that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent wraps err so Do stops at once. Nil stays nil.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err carries a Permanent marker.
func IsPermanent(err error) bool {
	var p *Permanent
	return errors.As(err, &p)
}

// WithRetryIf returns a copy of c using fn as the retry predicate.
func (c Config) WithRetryIf(fn func(error) bool) Config {
	c.RetryIf = fn
	return c
}

// WithOnRetry returns a copy of c calling fn before each backoff.
func (c Config) WithOnRetry(fn func(attempt int, err error)) Config {
	c.OnRetry = fn
	return c
}

// WithMaxAttempts returns a copy of c allowing n attempts.
func (c Config) WithMaxAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}
