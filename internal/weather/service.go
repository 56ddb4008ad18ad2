package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/i474232898/weather-panel/internal/logger"
)

// ErrEmptyCity is returned by Service.Lookup for blank city names.
var ErrEmptyCity = errors.New("city must not be empty")

// Service answers one-shot lookups outside of any panel.
type Service struct {
	provider Provider
	log      *slog.Logger
}

// NewService creates a new Service.
func NewService(provider Provider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		provider: provider,
		log:      log,
	}
}

// Lookup trims city and fetches a reading for it. Failures from the provider
// are returned unchanged.
func (s *Service) Lookup(ctx context.Context, city string) (Reading, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Reading{}, ErrEmptyCity
	}

	s.log.Debug("lookup requested", slog.String("city", city), slog.String("provider", s.provider.Name()))
	r, err := s.provider.Fetch(ctx, city)
	if err != nil {
		s.log.Info("lookup failed", slog.String("city", city), logger.Err(err))
		return Reading{}, err
	}
	return r, nil
}
