package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jonboulle/clockwork"

	httpapi "github.com/i474232898/weather-panel/internal/api/http"
	"github.com/i474232898/weather-panel/internal/config"
	"github.com/i474232898/weather-panel/internal/logger"
	"github.com/i474232898/weather-panel/internal/panel"
	"github.com/i474232898/weather-panel/internal/scheduler"
	"github.com/i474232898/weather-panel/internal/store"
	"github.com/i474232898/weather-panel/internal/weather"
	"github.com/i474232898/weather-panel/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.New(slog.LevelError).Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	dates, err := panel.NewDateFormatter(cfg.DateLocale)
	if err != nil {
		log.Error("failed to set up date formatting", logger.Err(err))
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()

	// Simulated lookup backend behind a circuit breaker.
	provider := providers.NewSimulatedProvider(providers.SimulatedConfig{
		Delay:       cfg.LookupDelay,
		FailureRate: cfg.FailureRate,
		Breaker: providers.BreakerConfig{
			MaxConsecutiveFailures: cfg.BreakerMaxFailures,
			OpenTimeout:            cfg.BreakerOpenTimeout,
		},
	}, clock, weather.NewRandom(), weather.DefaultCatalog(), log)

	// In-memory panel sessions with configured retention.
	sessions := store.NewSessionStore(cfg.SessionMax, cfg.SessionIdleTTL, cfg.DefaultCity, clock,
		func(surface *panel.Surface) *panel.Controller {
			return panel.New(surface, provider, panel.Options{
				Clock:        clock,
				Dates:        dates,
				DiscardStale: cfg.DiscardStaleLookups,
				Logger:       log,
			})
		})
	defer sessions.Close()

	// Scheduler that periodically drops idle sessions.
	sched := scheduler.New(sessions, cfg.SessionSweepInterval, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", logger.Err(err))
		os.Exit(1)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-panel",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	// Health, page and API routes.
	httpapi.RegisterHealthRoute(app, "weather-panel", sessions, provider)
	httpapi.RegisterRoutes(app, sessions, weather.NewService(provider, log))

	go func() {
		log.Info("listening", slog.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", logger.Err(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", logger.Err(err))
	}
}
