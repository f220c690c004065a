package dispatch

import (
	"sync"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

// Locator reports where the commander is at the moment it is asked.
type Locator interface {
	Location() event.Place
}

// Dispatcher accepts events for fan-out.
type Dispatcher interface {
	Dispatch(ev event.Event)
}

// Scheduler fires delayed follow-on events. Each event is rebuilt with the
// location current at fire time, not the one at scheduling time.
type Scheduler struct {
	log     zerolog.Logger
	locator Locator
	out     Dispatcher

	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	next    uint64
	stopped bool
}

func NewScheduler(logger zerolog.Logger, locator Locator, out Dispatcher) *Scheduler {
	return &Scheduler{
		log:     logger.With().Str("component", "scheduler").Logger(),
		locator: locator,
		out:     out,
		timers:  make(map[uint64]*time.Timer),
	}
}

// Schedule arms a timer for d. It is a no-op after Stop.
func (s *Scheduler) Schedule(d event.Delayed) {
	if d.Rebuild == nil || d.Origin == nil {
		return
	}
	delay := d.Delay
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	id := s.next
	s.next++
	s.timers[id] = time.AfterFunc(delay, func() { s.fire(id, d) })
	s.log.Debug().Dur("delay", delay).Str("origin", string(d.Origin.Kind())).Msg("Scheduled follow-on event")
}

func (s *Scheduler) fire(id uint64, d event.Delayed) {
	s.mu.Lock()
	_, live := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()
	if !live {
		return
	}

	ev := s.rebuild(d)
	if ev == nil {
		return
	}
	s.out.Dispatch(ev)
}

func (s *Scheduler) rebuild(d event.Delayed) (ev event.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("Rebuilding delayed event panicked")
			ev = nil
		}
	}()
	return d.Rebuild(s.locator.Location())
}

// Pending is the number of timers that have not fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer. Later calls to Schedule are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
