package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

type movingLocator struct {
	mu sync.Mutex
	at event.Place
}

func (l *movingLocator) Location() event.Place {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.at
}

func (l *movingLocator) move(p event.Place) {
	l.mu.Lock()
	l.at = p
	l.mu.Unlock()
}

type chanDispatcher chan event.Event

func (c chanDispatcher) Dispatch(ev event.Event) { c <- ev }

func arrival(delay time.Duration) event.Delayed {
	origin := event.ShipTransferInitiated{Header: event.NewHeader(time.Date(2017, 2, 20, 12, 0, 0, 0, time.UTC), "raw")}
	return event.Delayed{
		Origin: origin,
		Delay:  delay,
		Rebuild: func(at event.Place) event.Event {
			return event.ShipArrived{
				Header:  event.NewHeader(origin.Timestamp().Add(delay), origin.Raw()),
				System:  at.System,
				Station: at.Station,
			}
		},
	}
}

func TestSchedulerRebuildsWithFireTimeLocation(t *testing.T) {
	loc := &movingLocator{at: event.Place{System: "Sol", Station: "Abraham Lincoln"}}
	out := make(chanDispatcher, 1)
	s := NewScheduler(zerolog.Nop(), loc, out)
	defer s.Stop()

	s.Schedule(arrival(30 * time.Millisecond))
	loc.move(event.Place{System: "Lave", Station: "Lave Station"})

	select {
	case ev := <-out:
		arrived, ok := ev.(event.ShipArrived)
		if !ok {
			t.Fatalf("dispatched %T, want ShipArrived", ev)
		}
		if arrived.System != "Lave" || arrived.Station != "Lave Station" {
			t.Errorf("arrived at %s/%s, want the location at fire time", arrived.System, arrived.Station)
		}
		want := time.Date(2017, 2, 20, 12, 0, 0, 0, time.UTC).Add(30 * time.Millisecond)
		if !arrived.Timestamp().Equal(want) {
			t.Errorf("Timestamp = %v, want %v", arrived.Timestamp(), want)
		}
		if arrived.Raw() != "raw" {
			t.Errorf("Raw = %q", arrived.Raw())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delayed event never fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after firing", s.Pending())
	}
}

func TestSchedulerStopCancelsPending(t *testing.T) {
	out := make(chanDispatcher, 1)
	s := NewScheduler(zerolog.Nop(), &movingLocator{}, out)

	s.Schedule(arrival(50 * time.Millisecond))
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}
	s.Stop()
	s.Schedule(arrival(0))

	select {
	case ev := <-out:
		t.Errorf("dispatched %T after Stop", ev)
	case <-time.After(150 * time.Millisecond):
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after Stop", s.Pending())
	}
}

func TestSchedulerSurvivesBadRebuild(t *testing.T) {
	out := make(chanDispatcher, 2)
	s := NewScheduler(zerolog.Nop(), &movingLocator{}, out)
	defer s.Stop()

	bad := arrival(0)
	bad.Rebuild = func(event.Place) event.Event { panic("bad rebuild") }
	nothing := arrival(0)
	nothing.Rebuild = func(event.Place) event.Event { return nil }

	s.Schedule(bad)
	s.Schedule(nothing)
	s.Schedule(event.Delayed{Origin: bad.Origin})
	s.Schedule(arrival(10 * time.Millisecond))

	select {
	case ev := <-out:
		if _, ok := ev.(event.ShipArrived); !ok {
			t.Errorf("dispatched %T", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("good event never fired")
	}
	select {
	case ev := <-out:
		t.Errorf("unexpected extra event %T", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
