// Package dispatch delivers decoded events to the session controller and
// then to registered observers.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/journal-relay/backend/internal/event"
)

// Monitor observes every event, including restatements the controller
// suppresses. PreHandle runs synchronously inside the dispatch critical
// section and must not call back into the engine.
type Monitor interface {
	Name() string
	PreHandle(ev event.Event) error
	PostHandle(ctx context.Context, ev event.Event) error
}

// Responder reacts to events that changed session state. It must treat
// session state as read-only.
type Responder interface {
	Name() string
	Handle(ctx context.Context, ev event.Event) error
}

// Runner is implemented by monitors that own a long-running task. The task
// is kept alive by the supervisor.
type Runner interface {
	Run(ctx context.Context) error
}

var (
	ErrDuplicateObserver = errors.New("observer already registered")
	ErrUnknownObserver   = errors.New("unknown observer")
)

// Observer kinds reported by Observers.
const (
	KindMonitor   = "monitor"
	KindResponder = "responder"
)

type entry struct {
	name      string
	kind      string
	enabled   atomic.Bool
	monitor   Monitor
	responder Responder
	health    observerHealth
}

// ObserverStatus is a point-in-time view of one registered observer.
type ObserverStatus struct {
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Enabled   bool         `json:"enabled"`
	Health    HealthStatus `json:"health"`
	Failures  int          `json:"failures"`
	LastError string       `json:"lastError,omitempty"`
}

// NamedRunner pairs a runner with the monitor name it belongs to.
type NamedRunner struct {
	Name string
	Run  func(ctx context.Context) error
}

// Registry holds observers in registration order. Registration happens at
// startup; enabling and disabling is safe at any time.
type Registry struct {
	mu         sync.RWMutex
	monitors   []*entry
	responders []*entry
	byName     map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// RegisterMonitor adds m, enabled. Names are unique across monitors and
// responders.
func (r *Registry) RegisterMonitor(m Monitor) error {
	e := &entry{name: m.Name(), kind: KindMonitor, monitor: m}
	if err := r.add(e); err != nil {
		return err
	}
	r.mu.Lock()
	r.monitors = append(r.monitors, e)
	r.mu.Unlock()
	return nil
}

// RegisterResponder adds resp, enabled.
func (r *Registry) RegisterResponder(resp Responder) error {
	e := &entry{name: resp.Name(), kind: KindResponder, responder: resp}
	if err := r.add(e); err != nil {
		return err
	}
	r.mu.Lock()
	r.responders = append(r.responders, e)
	r.mu.Unlock()
	return nil
}

func (r *Registry) add(e *entry) error {
	if e.name == "" {
		return fmt.Errorf("registering %s: empty name", e.kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[e.name]; ok {
		return fmt.Errorf("registering %s %q: %w", e.kind, e.name, ErrDuplicateObserver)
	}
	e.enabled.Store(true)
	r.byName[e.name] = e
	return nil
}

// SetEnabled toggles the named observer. The change is seen by the next
// dispatch.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownObserver)
	}
	e.enabled.Store(enabled)
	return nil
}

// Enabled reports whether the named observer is registered and enabled.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()
	return ok && e.enabled.Load()
}

func (r *Registry) enabledMonitors() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterEnabled(r.monitors)
}

func (r *Registry) enabledResponders() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterEnabled(r.responders)
}

func filterEnabled(entries []*entry) []*entry {
	out := make([]*entry, 0, len(entries))
	for _, e := range entries {
		if e.enabled.Load() {
			out = append(out, e)
		}
	}
	return out
}

// Monitors returns the enabled monitors in registration order.
func (r *Registry) Monitors() []Monitor {
	entries := r.enabledMonitors()
	out := make([]Monitor, len(entries))
	for i, e := range entries {
		out[i] = e.monitor
	}
	return out
}

// Responders returns the enabled responders in registration order.
func (r *Registry) Responders() []Responder {
	entries := r.enabledResponders()
	out := make([]Responder, len(entries))
	for i, e := range entries {
		out[i] = e.responder
	}
	return out
}

// Observers lists every registered observer, monitors first.
func (r *Registry) Observers() []ObserverStatus {
	r.mu.RLock()
	all := make([]*entry, 0, len(r.monitors)+len(r.responders))
	all = append(all, r.monitors...)
	all = append(all, r.responders...)
	r.mu.RUnlock()

	out := make([]ObserverStatus, len(all))
	for i, e := range all {
		status, failures, lastErr := e.health.snapshot()
		out[i] = ObserverStatus{
			Name:      e.name,
			Kind:      e.kind,
			Enabled:   e.enabled.Load(),
			Health:    status,
			Failures:  failures,
			LastError: lastErr,
		}
	}
	return out
}

// Runners returns the monitors that own a long-running task, enabled or
// not. A disabled monitor's task still runs; only its event hooks stop.
func (r *Registry) Runners() []NamedRunner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []NamedRunner
	for _, e := range r.monitors {
		if run, ok := e.monitor.(Runner); ok {
			out = append(out, NamedRunner{Name: e.name, Run: run.Run})
		}
	}
	return out
}
