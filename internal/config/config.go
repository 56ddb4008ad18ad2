package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-panel/internal/logger"
)

var validate = validator.New()

type AppConfig struct {
	Port     string     `validate:"required,numeric"`
	LogLevel slog.Level `validate:"-"`

	// Lookup behaviour.
	LookupDelay         time.Duration `validate:"gt=0"`
	FailureRate         float64       `validate:"gte=0,lte=1"`
	DefaultCity         string
	DateLocale          string `validate:"required,bcp47_language_tag"`
	DiscardStaleLookups bool

	// Circuit breaker in front of the lookup backend.
	BreakerMaxFailures uint32        // 0 = never trip
	BreakerOpenTimeout time.Duration `validate:"gt=0"`

	// Panel session retention.
	SessionMax           int           `validate:"gte=0"` // 0 = unlimited
	SessionIdleTTL       time.Duration `validate:"gte=0"` // 0 = never expire
	SessionSweepInterval time.Duration `validate:"gte=1s"`
}

// Load reads configuration from environment with sensible defaults. A .env
// file in the working directory is applied first if present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.LogLevel, err = logger.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.LookupDelay, err = getenvDuration("LOOKUP_DELAY", "1500ms"); err != nil {
		return nil, err
	}
	if cfg.FailureRate, err = getenvFloat("FAILURE_RATE", 0.1); err != nil {
		return nil, err
	}
	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "London")
	cfg.DateLocale = getenvDefault("DATE_LOCALE", "en-US")
	if cfg.DiscardStaleLookups, err = getenvBool("DISCARD_STALE_LOOKUPS", false); err != nil {
		return nil, err
	}

	maxFailures, err := getenvInt("BREAKER_MAX_FAILURES", 0)
	if err != nil {
		return nil, err
	}
	if maxFailures < 0 {
		return nil, fmt.Errorf("invalid BREAKER_MAX_FAILURES: must not be negative")
	}
	cfg.BreakerMaxFailures = uint32(maxFailures)
	if cfg.BreakerOpenTimeout, err = getenvDuration("BREAKER_OPEN_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	if cfg.SessionMax, err = getenvInt("SESSION_MAX", 1000); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getenvDuration("SESSION_IDLE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
