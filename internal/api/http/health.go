package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-panel/internal/store"
)

// BreakerReporter exposes the state of the lookup backend's circuit breaker.
type BreakerReporter interface {
	BreakerState() string
}

// RegisterHealthRoute adds GET /health reporting the live session count and
// the breaker state.
func RegisterHealthRoute(app *fiber.App, service string, sessions *store.SessionStore, breaker BreakerReporter) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  service,
			"sessions": sessions.Len(),
			"breaker":  breaker.BreakerState(),
		})
	})
}
