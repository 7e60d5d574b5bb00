// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Search   SearchConfig
	Sources  SourcesConfig
	Rates    RatesConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Logging  logger.Config
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig holds timeout settings for offer search operations.
type TimeoutConfig struct {
	GlobalSearch time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"5s"`
	PerSource    time.Duration `env:"TIMEOUT_PER_SOURCE" envDefault:"2s"`
}

// SearchConfig holds search behaviour settings.
type SearchConfig struct {
	// SimulatedDelay holds every search before sources are queried (demo latency)
	SimulatedDelay time.Duration `env:"SEARCH_SIMULATED_DELAY" envDefault:"0s"`
}

// SourcesConfig selects the offer sources.
type SourcesConfig struct {
	DemoEnabled bool `env:"DEMO_SOURCE_ENABLED" envDefault:"true"`

	// OffersFile is a JSON offers fixture served as an extra source when set
	OffersFile string `env:"OFFERS_FILE"`
}

// RatesConfig points at an optional YAML rate table.
type RatesConfig struct {
	File           string `env:"RATES_FILE"`
	ReloadSchedule string `env:"RATES_RELOAD_SCHEDULE" envDefault:"@every 1h"`
}

// CacheConfig holds offer cache settings. Redis is used when RedisURL is set.
type CacheConfig struct {
	Enabled  bool          `env:"CACHE_ENABLED" envDefault:"true"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	RedisURL string        `env:"REDIS_URL"`
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if cfg.Timeouts.PerSource <= 0 {
		return fmt.Errorf("TIMEOUT_PER_SOURCE must be positive")
	}

	if cfg.Timeouts.PerSource >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("TIMEOUT_PER_SOURCE (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.PerSource, cfg.Timeouts.GlobalSearch)
	}

	// The delay runs inside the global deadline
	if cfg.Search.SimulatedDelay < 0 {
		return fmt.Errorf("SEARCH_SIMULATED_DELAY must not be negative")
	}
	if cfg.Search.SimulatedDelay >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("SEARCH_SIMULATED_DELAY (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Search.SimulatedDelay, cfg.Timeouts.GlobalSearch)
	}

	if !cfg.Sources.DemoEnabled && cfg.Sources.OffersFile == "" {
		return fmt.Errorf("no offer source configured: enable DEMO_SOURCE_ENABLED or set OFFERS_FILE")
	}

	if cfg.Rates.File != "" {
		if _, err := cron.ParseStandard(cfg.Rates.ReloadSchedule); err != nil {
			return fmt.Errorf("RATES_RELOAD_SCHEDULE %q is not a valid cron spec: %w", cfg.Rates.ReloadSchedule, err)
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when CACHE_ENABLED is true")
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UsesRedis reports whether the offer cache should be backed by Redis.
func (c *Config) UsesRedis() bool {
	return c.Cache.Enabled && c.Cache.RedisURL != ""
}
