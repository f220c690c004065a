// Package event defines the typed journal events produced by the decoder and
// consumed by the session controller and observers.
package event

import (
	"time"
)

// Event is one immutable, timestamped journal occurrence. The set of
// implementations is closed: every variant embeds Header and declares its own
// Kind, so a value with an unknown kind cannot be constructed.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
	Raw() string
	sealed()
}

// Header carries the fields shared by every event.
type Header struct {
	at  time.Time
	raw string
}

// NewHeader returns a header stamped at the given instant (normalized to UTC)
// and retaining the raw source record.
func NewHeader(at time.Time, raw string) Header {
	return Header{at: at.UTC(), raw: raw}
}

func (h Header) Timestamp() time.Time { return h.at }

// Raw is the original journal line. Synthetic events carry the line of the
// event that produced them.
func (h Header) Raw() string { return h.raw }

func (Header) sealed() {}

// Place is where the commander currently is, as far as session state
// knows. Either field may be empty.
type Place struct {
	System  string
	Station string
}

// Delayed is a follow-on event that should fire after Delay. Rebuild runs at
// fire time with the then-current place and must return the event to
// dispatch.
type Delayed struct {
	Origin  Event
	Delay   time.Duration
	Rebuild func(at Place) Event
}

// FireTime is the event-clock timestamp the rebuilt event carries.
func (d Delayed) FireTime() time.Time {
	return d.Origin.Timestamp().Add(d.Delay)
}
