package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/metrics"
	"github.com/rs/zerolog"
)

// Applier is the session state the engine updates before any observer sees
// an event. Apply reports whether the event should reach responders.
type Applier interface {
	Apply(ev event.Event) bool
}

// Observer phases, used in logs and metrics.
const (
	PhasePre     = "pre"
	PhaseRespond = "respond"
	PhasePost    = "post"
)

type dispatchIDKey struct{}

// WithDispatchID returns ctx carrying id.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the id of the dispatch that produced ctx, or "".
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}

// Engine applies each event to session state and fans it out to observers.
// Dispatch is safe to call from any goroutine except a monitor's PreHandle.
type Engine struct {
	log      zerolog.Logger
	state    Applier
	registry *Registry
	exec     *Executor
	newID    func() string

	mu sync.Mutex // serializes the pre-phase
}

func NewEngine(logger zerolog.Logger, state Applier, registry *Registry, exec *Executor) *Engine {
	return &Engine{
		log:      logger.With().Str("component", "dispatch").Logger(),
		state:    state,
		registry: registry,
		exec:     exec,
		newID:    uuid.NewString,
	}
}

// Dispatch runs the pre-phase synchronously and queues the responder and
// post phases. It returns once the pre-phase is done.
func (e *Engine) Dispatch(ev event.Event) {
	if ev == nil {
		return
	}
	id := e.newID()
	log := e.log.With().Str("dispatch", id).Str("kind", string(ev.Kind())).Logger()

	e.mu.Lock()
	forward := e.apply(log, ev)
	monitors := e.registry.enabledMonitors()
	for _, m := range monitors {
		e.invoke(log, m, PhasePre, func() error { return m.monitor.PreHandle(ev) })
	}
	e.mu.Unlock()

	metrics.RecordDispatch(string(ev.Kind()), forward)

	if forward {
		for _, r := range e.registry.enabledResponders() {
			e.exec.Submit(func(ctx context.Context) {
				ctx = WithDispatchID(ctx, id)
				e.invoke(log, r, PhaseRespond, func() error { return r.responder.Handle(ctx, ev) })
			})
		}
	} else {
		log.Debug().Msg("Event restated known state; skipping responders")
	}

	for _, m := range monitors {
		e.exec.Submit(func(ctx context.Context) {
			ctx = WithDispatchID(ctx, id)
			e.invoke(log, m, PhasePost, func() error { return m.monitor.PostHandle(ctx, ev) })
		})
	}
}

// apply runs the controller. A panicking controller withholds the event
// from responders.
func (e *Engine) apply(log zerolog.Logger, ev event.Event) (forward bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Session controller panicked")
			forward = false
		}
	}()
	return e.state.Apply(ev)
}

// invoke calls fn, isolating panics and recording the outcome.
func (e *Engine) invoke(log zerolog.Logger, obs *entry, phase string, fn func() error) {
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	metrics.RecordObserver(obs.name, phase, time.Since(start), err != nil)
	if err != nil {
		obs.health.recordFailure(err)
		log.Warn().Err(err).Str("observer", obs.name).Str("phase", phase).Msg("Observer failed")
		return
	}
	obs.health.recordSuccess()
}

// Wait blocks until queued observer tasks have finished or ctx is done.
func (e *Engine) Wait(ctx context.Context) error {
	return e.exec.Wait(ctx)
}
