package weather

import (
	"context"
)

// Provider abstracts the source a panel asks for a reading.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Reading, error)
}

// LookupFailure is the only failure a lookup reports. It is rendered on the
// panel and never retried.
type LookupFailure struct {
	City string
}

func (e *LookupFailure) Error() string {
	return "Unable to fetch weather data for " + e.City
}
