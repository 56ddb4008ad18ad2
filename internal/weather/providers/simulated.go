package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-panel/internal/logger"
	"github.com/i474232898/weather-panel/internal/weather"
)

const (
	DefaultDelay       = 1500 * time.Millisecond
	DefaultFailureRate = 0.1
)

// SimulatedConfig bundles the knobs of a SimulatedProvider. A non-positive
// Delay and a FailureRate outside [0, 1] fall back to the defaults. A zero
// FailureRate is kept and disables failures.
type SimulatedConfig struct {
	Delay       time.Duration
	FailureRate float64
	Breaker     BreakerConfig
}

// SimulatedProvider implements the weather.Provider interface without any
// network I/O. It waits a fixed delay, then fails with probability
// FailureRate or returns a generated reading.
type SimulatedProvider struct {
	name        string
	delay       time.Duration
	failureRate float64
	clock       clockwork.Clock
	random      weather.Random
	catalog     *weather.Catalog
	circuit     *gobreaker.CircuitBreaker
	log         *slog.Logger
}

func NewSimulatedProvider(cfg SimulatedConfig, clock clockwork.Clock, rnd weather.Random,
	catalog *weather.Catalog, log *slog.Logger,
) *SimulatedProvider {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		cfg.FailureRate = DefaultFailureRate
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rnd == nil {
		rnd = weather.NewRandom()
	}
	if catalog == nil {
		catalog = weather.DefaultCatalog()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	name := "simulated"
	return &SimulatedProvider{
		name:        name,
		delay:       cfg.Delay,
		failureRate: cfg.FailureRate,
		clock:       clock,
		random:      rnd,
		catalog:     catalog,
		circuit:     newCircuitBreaker(name, cfg.Breaker, log),
		log:         log,
	}
}

func (p *SimulatedProvider) Name() string {
	return p.name
}

// Delay returns the artificial latency applied to every fetch.
func (p *SimulatedProvider) Delay() time.Duration {
	return p.delay
}

// BreakerState reports the state of the provider's circuit breaker.
func (p *SimulatedProvider) BreakerState() string {
	return p.circuit.State().String()
}

// Fetch blocks for the configured delay and then draws the outcome. Every
// failure, including an open breaker, is a *weather.LookupFailure for city.
// Cancelling ctx before the delay elapses returns ctx.Err().
func (p *SimulatedProvider) Fetch(ctx context.Context, city string) (weather.Reading, error) {
	select {
	case <-ctx.Done():
		return weather.Reading{}, ctx.Err()
	case <-p.clock.After(p.delay):
	}

	reading, err := executeWithBreaker(p.circuit, func() (weather.Reading, error) {
		if p.random.Bernoulli(p.failureRate) {
			return weather.Reading{}, &weather.LookupFailure{City: city}
		}
		return weather.GenerateReading(p.catalog, p.random, city), nil
	})
	if err != nil {
		p.log.Debug("simulated lookup failed", slog.String("city", city), logger.Err(err))
		return weather.Reading{}, &weather.LookupFailure{City: city}
	}

	return reading, nil
}
