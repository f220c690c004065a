package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/session"
	"github.com/rs/zerolog"
)

// recorder collects observer calls in the order they happen.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(s string) int {
	n := 0
	for _, c := range r.list() {
		if c == s {
			n++
		}
	}
	return n
}

type fakeMonitor struct {
	name    string
	rec     *recorder
	preErr  error
	panicky bool
	onPre   func(ev event.Event)
	onPost  func(ctx context.Context, ev event.Event)
}

func (m *fakeMonitor) Name() string { return m.name }

func (m *fakeMonitor) PreHandle(ev event.Event) error {
	if m.panicky {
		panic("monitor exploded")
	}
	if m.onPre != nil {
		m.onPre(ev)
	}
	m.rec.add(m.name + ".pre")
	return m.preErr
}

func (m *fakeMonitor) PostHandle(ctx context.Context, ev event.Event) error {
	if m.onPost != nil {
		m.onPost(ctx, ev)
	}
	m.rec.add(m.name + ".post")
	return nil
}

type fakeResponder struct {
	name   string
	rec    *recorder
	err    error
	handle func(ctx context.Context, ev event.Event)
}

func (r *fakeResponder) Name() string { return r.name }

func (r *fakeResponder) Handle(ctx context.Context, ev event.Event) error {
	if r.handle != nil {
		r.handle(ctx, ev)
	}
	r.rec.add(r.name + ".handle")
	return r.err
}

type fixedApplier bool

func (f fixedApplier) Apply(event.Event) bool { return bool(f) }

func newTestEngine(t *testing.T, state Applier) (*Engine, *Registry) {
	t.Helper()
	reg := NewRegistry()
	exec := NewExecutor(zerolog.Nop(), 4)
	t.Cleanup(exec.Close)
	return NewEngine(zerolog.Nop(), state, reg, exec), reg
}

func waitIdle(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := e.Wait(ctx); err != nil {
		t.Fatalf("observers did not finish: %v", err)
	}
}

func dockedAt(station string) event.Docked {
	return event.Docked{
		Header:  event.NewHeader(time.Date(2017, 2, 20, 12, 0, 0, 0, time.UTC), ""),
		System:  "Sol",
		Station: station,
	}
}

func TestDockingFanOutSeesUpdatedState(t *testing.T) {
	ctrl := session.NewController(zerolog.Nop(), session.NewMemoryRepository())
	engine, reg := newTestEngine(t, ctrl)
	rec := &recorder{}

	var preSaw, respSaw string
	var respID string
	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{
		name: "cargo",
		rec:  rec,
		onPre: func(event.Event) {
			preSaw = ctrl.CurrentStationName()
		},
	}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{
		name: "feed",
		rec:  rec,
		handle: func(ctx context.Context, ev event.Event) {
			respSaw = ctrl.Snapshot().CurrentStation.Name
			respID = DispatchID(ctx)
		},
	}))

	engine.Dispatch(dockedAt("Abraham Lincoln"))
	waitIdle(t, engine)

	if preSaw != "Abraham Lincoln" {
		t.Errorf("monitor pre-phase saw station %q, want state already applied", preSaw)
	}
	if respSaw != "Abraham Lincoln" {
		t.Errorf("responder saw station %q", respSaw)
	}
	if respID == "" {
		t.Error("responder context has no dispatch id")
	}
	if rec.count("feed.handle") != 1 || rec.count("cargo.post") != 1 {
		t.Errorf("calls = %v", rec.list())
	}

	// Docking again at the same station is a restatement: the monitor still
	// hears about it, responders do not.
	engine.Dispatch(dockedAt("Abraham Lincoln"))
	waitIdle(t, engine)

	if got := rec.count("feed.handle"); got != 1 {
		t.Errorf("responder called %d times, want 1", got)
	}
	if got := rec.count("cargo.pre"); got != 2 {
		t.Errorf("monitor pre-phase called %d times, want 2", got)
	}
	if got := rec.count("cargo.post"); got != 2 {
		t.Errorf("monitor post-phase called %d times, want 2", got)
	}
}

func TestPreHandleRunsInRegistrationOrder(t *testing.T) {
	engine, reg := newTestEngine(t, fixedApplier(true))
	rec := &recorder{}
	for _, name := range []string{"a", "b", "c"} {
		mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: name, rec: rec}))
	}

	engine.Dispatch(dockedAt("X"))
	// Pre-phase is synchronous, so the order is settled before Dispatch
	// returns.
	calls := rec.list()
	if len(calls) < 3 || calls[0] != "a.pre" || calls[1] != "b.pre" || calls[2] != "c.pre" {
		t.Errorf("pre-phase order = %v", calls)
	}
	waitIdle(t, engine)
}

func TestObserverFailureIsolation(t *testing.T) {
	engine, reg := newTestEngine(t, fixedApplier(true))
	rec := &recorder{}

	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: "boom", rec: rec, panicky: true}))
	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: "failing", rec: rec, preErr: errors.New("nope")}))
	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: "fine", rec: rec}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{name: "bad", rec: rec, err: errors.New("broken")}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{
		name:   "worse",
		rec:    rec,
		handle: func(context.Context, event.Event) { panic("responder exploded") },
	}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{name: "good", rec: rec}))

	engine.Dispatch(dockedAt("X"))
	waitIdle(t, engine)

	if rec.count("fine.pre") != 1 {
		t.Error("monitor after a panicking one was not called")
	}
	if rec.count("good.handle") != 1 {
		t.Error("responder next to failing ones was not called")
	}

	status := map[string]ObserverStatus{}
	for _, s := range reg.Observers() {
		status[s.Name] = s
	}
	if s := status["boom"]; s.Failures != 1 || s.LastError != "panic: monitor exploded" {
		t.Errorf("boom status = %+v", s)
	}
	if s := status["worse"]; s.Failures != 1 || s.LastError == "" {
		t.Errorf("worse status = %+v", s)
	}
	if s := status["good"]; s.Failures != 0 || s.Health != StatusHealthy {
		t.Errorf("good status = %+v", s)
	}
}

type panickingApplier struct{}

func (panickingApplier) Apply(event.Event) bool { panic("controller exploded") }

func TestControllerPanicWithholdsResponders(t *testing.T) {
	engine, reg := newTestEngine(t, panickingApplier{})
	rec := &recorder{}
	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: "m", rec: rec}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{name: "r", rec: rec}))

	engine.Dispatch(dockedAt("X"))
	waitIdle(t, engine)

	if rec.count("r.handle") != 0 {
		t.Error("responder ran after controller panic")
	}
	if rec.count("m.pre") != 1 || rec.count("m.post") != 1 {
		t.Errorf("monitor calls = %v", rec.list())
	}
}

func TestDisabledObserversSkipped(t *testing.T) {
	engine, reg := newTestEngine(t, fixedApplier(true))
	rec := &recorder{}
	mustRegister(t, reg.RegisterMonitor(&fakeMonitor{name: "m", rec: rec}))
	mustRegister(t, reg.RegisterResponder(&fakeResponder{name: "r", rec: rec}))

	if err := reg.SetEnabled("r", false); err != nil {
		t.Fatal(err)
	}
	if err := reg.SetEnabled("m", false); err != nil {
		t.Fatal(err)
	}
	engine.Dispatch(dockedAt("X"))
	waitIdle(t, engine)
	if calls := rec.list(); len(calls) != 0 {
		t.Errorf("disabled observers called: %v", calls)
	}

	if err := reg.SetEnabled("r", true); err != nil {
		t.Fatal(err)
	}
	engine.Dispatch(dockedAt("X"))
	waitIdle(t, engine)
	if rec.count("r.handle") != 1 {
		t.Error("re-enabled responder not called")
	}
}

func TestDispatchFromObserverTask(t *testing.T) {
	engine, reg := newTestEngine(t, fixedApplier(true))
	rec := &recorder{}
	var once sync.Once
	mustRegister(t, reg.RegisterResponder(&fakeResponder{
		name: "echo",
		rec:  rec,
		handle: func(context.Context, event.Event) {
			once.Do(func() {
				engine.Dispatch(event.MarketInformationUpdated{
					Header: event.NewHeader(time.Now(), ""),
					Reason: event.MarketReasonProfile,
				})
			})
		},
	}))

	engine.Dispatch(dockedAt("X"))
	deadline := time.Now().Add(2 * time.Second)
	for rec.count("echo.handle") < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := rec.count("echo.handle"); got != 2 {
		t.Errorf("echo handled %d events, want 2", got)
	}
}

func mustRegister(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
