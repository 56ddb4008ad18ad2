package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig controls the circuit breaker placed in front of a provider.
type BreakerConfig struct {
	// MaxConsecutiveFailures trips the breaker once reached. Zero never trips.
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

var errNilCircuit = errors.New("circuit breaker not configured")

func newCircuitBreaker(name string, cfg BreakerConfig, log *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.MaxConsecutiveFailures == 0 {
				return false
			}
			return counts.ConsecutiveFailures >= cfg.MaxConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("circuit breaker changed state", slog.String("breaker", name),
					slog.String("from", from.String()), slog.String("to", to.String()))
			}
		},
	})
}

// executeWithBreaker runs fn through cb. An open breaker is reported as an
// error wrapping gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests.
func executeWithBreaker[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	if cb == nil {
		return zero, errNilCircuit
	}

	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("circuit breaker open: %w", err)
		}
		return zero, err
	}

	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return v, nil
}
