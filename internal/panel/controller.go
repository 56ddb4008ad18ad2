// Package panel drives a weather panel: it reads the city input, shows a
// loading state while a lookup is in flight and renders either the reading
// or the failure message.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-panel/internal/logger"
	"github.com/i474232898/weather-panel/internal/weather"
)

// Options configures a Controller.
type Options struct {
	// Clock supplies the date shown by Initialize. Defaults to the real clock.
	Clock clockwork.Clock
	// Dates formats the date line. Defaults to DefaultLocale.
	Dates *DateFormatter
	// DiscardStale drops completions of lookups that were superseded by a
	// newer trigger. When false, every completion renders and the last one
	// to arrive wins.
	DiscardStale bool
	Logger       *slog.Logger
}

// Controller owns a View and runs lookups against a Provider. All view
// mutations are serialized by the controller.
type Controller struct {
	view         View
	provider     weather.Provider
	clock        clockwork.Clock
	dates        *DateFormatter
	discardStale bool
	log          *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   State
	seq     uint64
	closed  bool
	pending sync.WaitGroup
}

// New returns a Controller in the idle state. It does not touch the view
// until Initialize is called.
func New(view View, provider weather.Provider, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Dates == nil {
		opts.Dates = defaultDates
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		view:         view,
		provider:     provider,
		clock:        opts.Clock,
		dates:        opts.Dates,
		discardStale: opts.DiscardStale,
		log:          opts.Logger,
		ctx:          ctx,
		cancel:       cancel,
		state:        State{Phase: PhaseIdle},
	}
}

// Initialize writes the date line once and runs the initial lookup with
// whatever the input field currently holds.
func (c *Controller) Initialize() {
	c.mu.Lock()
	c.view.SetText(FieldDate, c.dates.Format(c.clock.Now()))
	c.mu.Unlock()

	c.TriggerLookup()
}

// HandleEvent starts a lookup for button clicks and Enter key presses.
// Other events are ignored.
func (c *Controller) HandleEvent(ev Event) bool {
	if !ev.Triggers() {
		return false
	}
	return c.TriggerLookup()
}

// TriggerLookup reads the trimmed input value. An empty value is a no-op.
// Otherwise the panel switches to loading before TriggerLookup returns and
// the lookup completes asynchronously. Earlier lookups still in flight are
// not cancelled. It reports whether a lookup was started.
func (c *Controller) TriggerLookup() bool {
	city := strings.TrimSpace(c.view.InputValue())
	if city == "" {
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.seq++
	seq := c.seq
	c.state = State{Phase: PhaseLoading, City: city}
	c.view.SetVisible(RegionLoading, true)
	c.view.SetVisible(RegionWeather, false)
	c.view.SetVisible(RegionError, false)
	c.pending.Add(1)
	c.mu.Unlock()

	c.log.Debug("lookup started", slog.String("city", city), slog.Uint64("seq", seq))

	go func() {
		defer c.pending.Done()
		reading, err := c.provider.Fetch(c.ctx, city)
		c.completeLookup(seq, city, reading, err)
	}()

	return true
}

func (c *Controller) completeLookup(seq uint64, city string, reading weather.Reading, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.discardStale && seq != c.seq {
		c.log.Debug("stale lookup discarded", slog.String("city", city), slog.Uint64("seq", seq))
		return
	}

	if err != nil {
		var lf *weather.LookupFailure
		if !errors.As(err, &lf) {
			c.log.Warn("lookup returned an unexpected error", slog.String("city", city), logger.Err(err))
			lf = &weather.LookupFailure{City: city}
		}
		c.showError(lf.Error())
		return
	}

	c.showReading(city, reading)
}

func (c *Controller) showReading(city string, r weather.Reading) {
	c.view.SetVisible(RegionLoading, false)
	c.view.SetVisible(RegionWeather, true)
	c.view.SetVisible(RegionError, false)

	c.view.SetText(FieldLocation, r.Location.String())
	c.view.SetText(FieldTemperature, strconv.Itoa(r.TemperatureC)+"°C")
	c.view.SetText(FieldDescription, string(r.Condition))
	c.view.SetText(FieldIcon, r.Icon)
	c.view.SetText(FieldWindSpeed, strconv.Itoa(r.WindSpeedKmh)+" km/h")
	c.view.SetText(FieldHumidity, strconv.Itoa(r.HumidityPct)+"%")
	c.view.SetText(FieldFeelsLike, strconv.Itoa(r.FeelsLikeC)+"°C")
	c.view.SetText(FieldVisibility, strconv.Itoa(r.VisibilityKm)+" km")

	c.state = State{
		Phase:   PhaseSuccess,
		City:    city,
		Country: r.Location.Country,
		Reading: &r,
	}
}

func (c *Controller) showError(message string) {
	c.view.SetVisible(RegionLoading, false)
	c.view.SetVisible(RegionWeather, false)
	c.view.SetVisible(RegionError, true)
	c.view.SetText(FieldErrorText, message)

	c.state = State{Phase: PhaseError, Message: message}
}

// State returns the current ViewState.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Observe calls fn with the current state while no lookup can render, so
// fn sees the view and the state in agreement.
func (c *Controller) Observe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}

// Wait blocks until every started lookup has completed.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Close cancels lookups in flight and stops further renders.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.pending.Wait()
}
