package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const defaultInterval = time.Minute

// Sweeper is anything that drops expired entries and reports how many.
type Sweeper interface {
	Sweep() int
	Len() int
}

// Scheduler periodically sweeps idle panel sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	log       *slog.Logger
}

// New creates a new Scheduler.
func New(sweeper Sweeper, interval time.Duration, log *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.runSweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runSweep() {
	removed := s.sweeper.Sweep()
	if removed > 0 {
		s.log.Info("swept idle panel sessions", slog.Int("removed", removed),
			slog.Int("remaining", s.sweeper.Len()))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
