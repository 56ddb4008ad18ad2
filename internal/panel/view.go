package panel

import (
	"sync"
)

// Field names a text element of the panel.
type Field string

const (
	FieldDate        Field = "date"
	FieldLocation    Field = "location"
	FieldTemperature Field = "temperature"
	FieldIcon        Field = "weather-icon"
	FieldDescription Field = "weather-description"
	FieldWindSpeed   Field = "wind-speed"
	FieldHumidity    Field = "humidity"
	FieldFeelsLike   Field = "feels-like"
	FieldVisibility  Field = "visibility"
	FieldErrorText   Field = "error-text"
)

// Region names one of the mutually exclusive panel areas.
type Region string

const (
	RegionLoading Region = "loading"
	RegionWeather Region = "weather-info"
	RegionError   Region = "error-message"
)

// Regions lists every region in render order.
var Regions = []Region{RegionLoading, RegionWeather, RegionError}

// View is the rendering target a Controller drives.
type View interface {
	InputValue() string
	SetText(f Field, text string)
	SetVisible(r Region, visible bool)
}

// Surface is an in-memory View. It records everything written to it and is
// safe for concurrent use.
type Surface struct {
	mu      sync.RWMutex
	input   string
	texts   map[Field]string
	visible map[Region]bool
}

// NewSurface returns a Surface whose input field holds input. All regions
// start hidden.
func NewSurface(input string) *Surface {
	return &Surface{
		input:   input,
		texts:   make(map[Field]string),
		visible: make(map[Region]bool),
	}
}

func (s *Surface) InputValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// SetInput replaces the content of the input field.
func (s *Surface) SetInput(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = v
}

func (s *Surface) SetText(f Field, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[f] = text
}

func (s *Surface) SetVisible(r Region, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[r] = visible
}

// Text returns the last text written to f.
func (s *Surface) Text(f Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts[f]
}

// Visible reports whether r is currently shown.
func (s *Surface) Visible(r Region) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible[r]
}

// Snapshot is a point-in-time copy of a Surface.
type Snapshot struct {
	Input   string           `json:"input"`
	Texts   map[Field]string `json:"fields"`
	Visible map[Region]bool  `json:"regions"`
}

// Snapshot copies the surface under a single lock so the regions and texts
// are consistent with each other.
func (s *Surface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Input:   s.input,
		Texts:   make(map[Field]string, len(s.texts)),
		Visible: make(map[Region]bool, len(Regions)),
	}
	for f, t := range s.texts {
		snap.Texts[f] = t
	}
	for _, r := range Regions {
		snap.Visible[r] = s.visible[r]
	}
	return snap
}
