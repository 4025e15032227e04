package types

import "time"

// Reading is one provider observation for a city. It only lives for the
// duration of a lookup.
type Reading struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	HumidityPct int
	PressureHpa int
	Description string
	WindSpeed   float64
	ObservedAt  time.Time
}

// LookupEvent records the outcome of a single lookup request.
type LookupEvent struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Outcome     string    `json:"outcome"`
	Message     string    `json:"message,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	RequestedAt time.Time `json:"requestedAt"`
}

// OutcomeOK is the LookupEvent outcome of a successful lookup.
const OutcomeOK = "ok"
