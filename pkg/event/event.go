// Package event defines the values exchanged between event sources and the
// handlers registered on them.
package event

import "time"

// Event is a single occurrence delivered to registered handlers.
type Event struct {
	// Name is the event identifier (e.g. "click").
	Name string

	// Payload carries event-specific data. May be nil.
	Payload any

	// Timestamp is when the source dispatched the event.
	Timestamp time.Time
}

// Handler receives dispatched events.
type Handler func(Event)

// Token identifies one registration on an event source. The token returned
// by a registration must be presented to remove that same registration.
type Token string

// String returns the token value.
func (t Token) String() string {
	return string(t)
}

// Short returns the first 8 characters of the token for display.
func (t Token) Short() string {
	if len(t) >= 8 {
		return string(t[:8])
	}
	return string(t)
}
