package profile

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

type fakeState struct {
	mu      sync.Mutex
	station string
	system  string
	merged  []session.MarketData
	profile *session.Profile
}

func (s *fakeState) CurrentStationName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.station
}

func (s *fakeState) CurrentSystemName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.system
}

func (s *fakeState) MergeMarket(required string, m session.MarketData, _ time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.station != required {
		return false
	}
	s.merged = append(s.merged, m)
	return true
}

func (s *fakeState) ApplyProfile(p session.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

func (s *fakeState) moveTo(station string) {
	s.mu.Lock()
	s.station = station
	s.mu.Unlock()
}

// fakeSource answers FetchStation from a script; after the script runs
// out it repeats the last entry.
type fakeSource struct {
	mu      sync.Mutex
	ready   bool
	script  []StationSnapshot
	errs    []error
	fetches int
	onFetch func(n int)
	profile Snapshot
	pulls   int
}

func (f *fakeSource) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeSource) FetchProfile(context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls++
	return f.profile, nil
}

func (f *fakeSource) profilePulls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pulls
}

func (f *fakeSource) FetchStation(_ context.Context, _ string) (StationSnapshot, error) {
	f.mu.Lock()
	f.fetches++
	n := f.fetches
	i := n - 1
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	snap := f.script[i]
	hook := f.onFetch
	f.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return snap, err
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type chanDispatcher chan event.Event

func (c chanDispatcher) Dispatch(ev event.Event) { c <- ev }

func newTestConverger(src Source, state State) (*Converger, chanDispatcher) {
	c := NewConverger(zerolog.Nop(), src, state, Options{
		Interval:      time.Millisecond,
		FallbackDelay: 10 * time.Millisecond,
	})
	out := make(chanDispatcher, 4)
	c.SetDispatcher(out)
	return c, out
}

func TestConvergeMergesOnceProfileCatchesUp(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{
		{Name: "Daedalus"},
		{Name: "Daedalus"},
		{Name: "Abraham Lincoln", Economies: []string{"Service"}, Outfitting: []string{"hpt_pulselaser"}},
	}}
	c, out := newTestConverger(src, state)
	defer c.Close()

	if !c.Converge(context.Background(), "Abraham Lincoln") {
		t.Fatal("Converge = false")
	}
	if src.fetchCount() != 3 {
		t.Errorf("fetches = %d, want 3", src.fetchCount())
	}
	if len(state.merged) != 1 || state.merged[0].Economies[0] != "Service" {
		t.Errorf("merged = %+v", state.merged)
	}
	select {
	case ev := <-out:
		m, ok := ev.(event.MarketInformationUpdated)
		if !ok || m.Reason != event.MarketReasonProfile {
			t.Errorf("emitted %+v", ev)
		}
	default:
		t.Error("no market notification emitted")
	}
}

func TestConvergeAbandonsWithoutFetchWhenAlreadyMoved(t *testing.T) {
	state := &fakeState{station: "Daedalus", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{{Name: "Abraham Lincoln"}}}
	c, out := newTestConverger(src, state)
	defer c.Close()

	if c.Converge(context.Background(), "Abraham Lincoln") {
		t.Error("Converge = true for a station the commander left")
	}
	if got := src.fetchCount(); got != 0 {
		t.Errorf("fetches = %d, want 0", got)
	}
	if len(out) != 0 {
		t.Error("notification emitted on abandonment")
	}
}

func TestConvergeStopsFetchingAfterUndock(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{{Name: "Daedalus"}}}
	src.onFetch = func(n int) {
		if n == 2 {
			state.moveTo("")
		}
	}
	c, _ := newTestConverger(src, state)
	defer c.Close()

	if c.Converge(context.Background(), "Abraham Lincoln") {
		t.Error("Converge = true after undocking")
	}
	if got := src.fetchCount(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestConvergeGivesUpAfterAttempts(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{
		ready:  true,
		script: []StationSnapshot{{}, {Name: "Daedalus"}},
		errs:   []error{errors.New("timeout")},
	}
	c, _ := newTestConverger(src, state)
	defer c.Close()

	if c.Converge(context.Background(), "Abraham Lincoln") {
		t.Error("Converge = true with a profile that never catches up")
	}
	if got := src.fetchCount(); got != DefaultAttempts {
		t.Errorf("fetches = %d, want %d", got, DefaultAttempts)
	}
	if len(state.merged) != 0 {
		t.Error("merged data from the wrong station")
	}
}

func TestConvergeAbandonsWhenSourceDrops(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{{Name: "Daedalus"}}}
	src.onFetch = func(int) {
		src.mu.Lock()
		src.ready = false
		src.mu.Unlock()
	}
	c, _ := newTestConverger(src, state)
	defer c.Close()

	if c.Converge(context.Background(), "Abraham Lincoln") {
		t.Error("Converge = true")
	}
	if got := src.fetchCount(); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
}

func TestRefreshStationFallsBackWhenNotReady(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln"}
	c, out := newTestConverger(Unavailable{}, state)
	defer c.Close()

	start := time.Now()
	c.RefreshStation("Abraham Lincoln")
	select {
	case ev := <-out:
		m, ok := ev.(event.MarketInformationUpdated)
		if !ok || m.Reason != event.MarketReasonFallback {
			t.Errorf("emitted %+v", ev)
		}
		if time.Since(start) < 10*time.Millisecond {
			t.Error("fallback fired before its delay")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no fallback notification")
	}
}

func TestRefreshStationConvergesInBackground(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{{Name: "Abraham Lincoln"}}}
	c, out := newTestConverger(src, state)
	defer c.Close()

	c.RefreshStation("Abraham Lincoln")
	select {
	case ev := <-out:
		if m := ev.(event.MarketInformationUpdated); m.Reason != event.MarketReasonProfile {
			t.Errorf("Reason = %q", m.Reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no profile notification")
	}
}

func TestCloseCancelsOutstandingLoops(t *testing.T) {
	state := &fakeState{station: "Abraham Lincoln", system: "Sol"}
	src := &fakeSource{ready: true, script: []StationSnapshot{{Name: "Daedalus"}}}
	c := NewConverger(zerolog.Nop(), src, state, Options{Interval: time.Hour})

	c.RefreshStation("Abraham Lincoln")
	deadline := time.Now().Add(2 * time.Second)
	for src.fetchCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the waiting loop")
	}

	c.RefreshStation("Abraham Lincoln")
	if got := src.fetchCount(); got != 1 {
		t.Errorf("fetches = %d after Close, want 1", got)
	}
}

func TestRefreshProfile(t *testing.T) {
	combat, federation := 4, 3
	state := &fakeState{}
	src := &fakeSource{ready: true, profile: Snapshot{
		Commander: "Jameson",
		Credits:   12345,
		Ranks:     Ranks{Combat: &combat, Federation: &federation},
	}}
	c, _ := newTestConverger(src, state)
	defer c.Close()

	if err := c.RefreshProfile(context.Background()); err != nil {
		t.Fatal(err)
	}
	p := state.profile
	if p == nil || p.Commander != "Jameson" || p.Credits != 12345 {
		t.Fatalf("profile = %+v", p)
	}
	if p.Combat == nil || p.Combat.Name != "Expert" {
		t.Errorf("Combat = %+v", p.Combat)
	}
	if p.Federation == nil || p.Federation.Name != "Midshipman" {
		t.Errorf("Federation = %+v", p.Federation)
	}
	if p.Trade != nil {
		t.Errorf("Trade = %+v, want nil", p.Trade)
	}

	state.profile = nil
	c2, _ := newTestConverger(Unavailable{}, state)
	defer c2.Close()
	if err := c2.RefreshProfile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if state.profile != nil {
		t.Error("unready source applied a profile")
	}
}

func TestUnavailable(t *testing.T) {
	var u Unavailable
	if u.Ready() {
		t.Error("Unavailable is ready")
	}
	if _, err := u.FetchStation(context.Background(), "Sol"); !errors.Is(err, ErrNotReady) {
		t.Errorf("FetchStation error = %v", err)
	}
}

func TestUndockingRefreshesProfile(t *testing.T) {
	ctrl := session.NewController(zerolog.Nop(), session.NewMemoryRepository())
	src := &fakeSource{ready: true, profile: Snapshot{Commander: "Jameson", Credits: 500}}
	c, _ := newTestConverger(src, ctrl)
	defer c.Close()
	ctrl.SetRefresher(c)

	at := time.Date(2017, 2, 20, 12, 0, 0, 0, time.UTC)
	ctrl.Apply(event.Undocked{Header: event.NewHeader(at, ""), Station: "Abraham Lincoln"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.Snapshot().Commander.Name == "Jameson" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := ctrl.Snapshot().Commander; got.Name != "Jameson" || got.Credits != 500 {
		t.Errorf("commander after undock = %+v", got)
	}
	if src.profilePulls() != 1 {
		t.Errorf("profile fetches = %d, want 1", src.profilePulls())
	}
	if src.fetchCount() != 0 {
		t.Errorf("station fetches = %d, want 0", src.fetchCount())
	}
}

func TestRefreshCommanderAfterCloseIsNoop(t *testing.T) {
	src := &fakeSource{ready: true}
	c, _ := newTestConverger(src, &fakeState{})
	c.Close()
	c.RefreshCommander()
	if src.profilePulls() != 0 {
		t.Errorf("profile fetched after Close")
	}
}
