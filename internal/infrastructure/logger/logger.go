// Package logger wraps zerolog with the service's defaults and carries the
// request ID through context.Context so use-case logs can be correlated with
// the HTTP access log.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is json or console
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	EnableCaller bool   `env:"LOG_CALLER" envDefault:"false"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"flight-value-ranking"`
}

// DefaultConfig mirrors the envDefault tags above.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", ServiceName: "flight-value-ranking"}
}

// Logger is a zerolog.Logger with field helpers for this service.
type Logger struct {
	zerolog.Logger
}

// New writes to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput builds a logger writing to out. An unknown level falls back to info.
func NewWithOutput(cfg Config, out io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ServiceName != "" {
		zctx = zctx.Str("service", cfg.ServiceName)
	}
	if cfg.EnableCaller {
		zctx = zctx.Caller()
	}

	return &Logger{Logger: zctx.Logger()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithField returns a child logger carrying key=value on every entry.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithSource tags entries with an offer source name.
func (l *Logger) WithSource(source string) *Logger {
	return l.WithField("source", source)
}

// WithComponent tags entries with a background component name such as "scheduler".
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

type requestIDKey struct{}

// ContextWithRequestID stores id in ctx for later log correlation.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// For returns l tagged with the request ID carried by ctx. Without one, l is
// returned unchanged.
func (l *Logger) For(ctx context.Context) *Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return l
	}
	return l.WithField("request_id", id)
}

var global = New(DefaultConfig())

// SetGlobal replaces the process-wide logger used by Info, Error and Fatal.
func SetGlobal(l *Logger) {
	if l != nil {
		global = l
	}
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event { return global.Info() }

// Error starts an error event on the global logger.
func Error() *zerolog.Event { return global.Error() }

// Fatal starts a fatal event on the global logger. Msg exits the process.
func Fatal() *zerolog.Event { return global.Fatal() }
