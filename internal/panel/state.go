package panel

import (
	"github.com/i474232898/weather-panel/internal/weather"
)

// Phase is the rendering mode of a panel.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// State is the panel's current ViewState. Reading is set only in
// PhaseSuccess and Message only in PhaseError.
type State struct {
	Phase   Phase            `json:"phase"`
	City    string           `json:"city,omitempty"`
	Country string           `json:"country,omitempty"`
	Reading *weather.Reading `json:"reading,omitempty"`
	Message string           `json:"message,omitempty"`
}

// EventType names a trigger source.
type EventType string

const (
	EventClick    EventType = "click"
	EventKeyPress EventType = "keypress"
)

// KeyEnter is the only key that triggers a lookup.
const KeyEnter = "Enter"

// Event is a user action delivered to a Controller.
type Event struct {
	Type EventType
	Key  string
}

// Triggers reports whether the event starts a lookup.
func (e Event) Triggers() bool {
	switch e.Type {
	case EventClick:
		return true
	case EventKeyPress:
		return e.Key == KeyEnter
	default:
		return false
	}
}
