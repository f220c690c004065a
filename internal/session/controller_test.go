package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

var t0 = time.Date(2017, 2, 20, 12, 0, 0, 0, time.UTC)

func hdr(offset time.Duration) event.Header {
	return event.NewHeader(t0.Add(offset), "")
}

type recordingRefresher struct {
	mu       sync.Mutex
	c        *Controller
	stations []string
	sawState []string
	cmdrs    int
}

// RefreshStation reads back through the controller, which deadlocks if
// called with the lock held.
func (r *recordingRefresher) RefreshStation(name string) {
	current := r.c.CurrentStationName()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stations = append(r.stations, name)
	r.sawState = append(r.sawState, current)
}

func (r *recordingRefresher) RefreshCommander() {
	_ = r.c.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmdrs++
}

func newTestController() (*Controller, *MemoryRepository, *recordingRefresher) {
	repo := NewMemoryRepository()
	c := NewController(zerolog.Nop(), repo)
	r := &recordingRefresher{c: c}
	c.SetRefresher(r)
	return c, repo, r
}

func docked(offset time.Duration, system, station string) event.Docked {
	return event.Docked{
		Header:       hdr(offset),
		System:       system,
		Station:      station,
		StationModel: "Orbis",
		Faction:      "Mother Gaia",
		Government:   "Democracy",
		Allegiance:   "Federation",
		Services:     []string{"Refuel", "Repair", "Commodities"},
	}
}

func TestDockedPopulatesStationAndRefreshes(t *testing.T) {
	c, _, r := newTestController()

	if !c.Apply(docked(0, "Sol", "Abraham Lincoln")) {
		t.Fatal("first docking was suppressed")
	}

	s := c.Snapshot()
	if s.CurrentSystem == nil || s.CurrentSystem.Name != "Sol" {
		t.Fatalf("CurrentSystem = %+v, want Sol", s.CurrentSystem)
	}
	st := s.CurrentStation
	if st == nil || st.Name != "Abraham Lincoln" {
		t.Fatalf("CurrentStation = %+v, want Abraham Lincoln", st)
	}
	if st.Faction != "Mother Gaia" || st.Model != "Orbis" || !st.Services.Has(ServiceMarket|ServiceRepair) {
		t.Errorf("station fields not copied: %+v", st)
	}
	if s.Vehicle != Ship {
		t.Errorf("Vehicle = %v, want ship", s.Vehicle)
	}

	if len(r.stations) != 1 || r.stations[0] != "Abraham Lincoln" {
		t.Errorf("refreshed %v, want [Abraham Lincoln]", r.stations)
	}
	if r.sawState[0] != "Abraham Lincoln" {
		t.Errorf("refresher saw station %q, want the new one", r.sawState[0])
	}
}

func TestRepeatedDockingIsRestatement(t *testing.T) {
	c, _, r := newTestController()
	c.Apply(docked(0, "Sol", "Abraham Lincoln"))
	before := c.Snapshot()

	if c.Apply(docked(time.Second, "Sol", "Abraham Lincoln")) {
		t.Error("second identical docking was not suppressed")
	}
	after := c.Snapshot()
	if after.CurrentStation.Name != before.CurrentStation.Name || after.Environment != before.Environment {
		t.Error("restatement changed state")
	}
	if len(r.stations) != 1 {
		t.Errorf("refreshed %d times, want 1", len(r.stations))
	}
}

func TestDockingInvariantAcrossSequences(t *testing.T) {
	tests := []struct {
		name   string
		events []event.Event
		docked bool
	}{
		{"dock", []event.Event{docked(0, "Sol", "Abraham Lincoln")}, true},
		{"dock then undock", []event.Event{
			docked(0, "Sol", "Abraham Lincoln"),
			event.Undocked{Header: hdr(time.Second), Station: "Abraham Lincoln"},
		}, false},
		{"dock then hyperspace engage", []event.Event{
			docked(0, "Sol", "Abraham Lincoln"),
			event.FSDEngaged{Header: hdr(time.Second), Target: event.JumpHyperspace},
		}, false},
		{"dock then jump", []event.Event{
			docked(0, "Sol", "Abraham Lincoln"),
			event.Jumped{Header: hdr(time.Minute), System: "Alpha Centauri"},
		}, false},
		{"undock then dock elsewhere", []event.Event{
			docked(0, "Sol", "Abraham Lincoln"),
			event.Undocked{Header: hdr(time.Second), Station: "Abraham Lincoln"},
			docked(time.Minute, "Sol", "Daedalus"),
		}, true},
		{"location undocked", []event.Event{
			docked(0, "Sol", "Abraham Lincoln"),
			event.Location{Header: hdr(time.Second), System: "Sol", Docked: false},
		}, false},
		{"location docked", []event.Event{
			event.Location{Header: hdr(0), System: "Sol", Docked: true, Station: "Daedalus"},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			for _, ev := range tt.events {
				c.Apply(ev)
			}
			s := c.Snapshot()
			if s.Docked() != tt.docked {
				t.Errorf("Docked() = %v, want %v", s.Docked(), tt.docked)
			}
			if s.Docked() && s.CurrentStation != s.CurrentSystem.Station(s.CurrentStation.Name) {
				t.Error("CurrentStation is not one of CurrentSystem's stations")
			}
		})
	}
}

func TestJumpScenario(t *testing.T) {
	c, repo, _ := newTestController()
	pop := int64(22780919531)

	if !c.Apply(event.FSDEngaged{Header: hdr(0), Target: event.JumpHyperspace, System: "Sol"}) {
		t.Fatal("FSD engage suppressed")
	}
	if c.Environment() != Hyperspace {
		t.Fatalf("Environment = %v, want hyperspace", c.Environment())
	}

	jump := event.Jumped{
		Header:     hdr(20 * time.Second),
		System:     "Sol",
		X:          0,
		Y:          0,
		Z:          0,
		Allegiance: "Federation",
		Faction:    "Mother Gaia",
		Government: "Democracy",
		Security:   "High",
		Population: &pop,
	}
	if !c.Apply(jump) {
		t.Fatal("arrival jump suppressed")
	}
	s := c.Snapshot()
	if s.Environment != Supercruise {
		t.Errorf("Environment = %v, want supercruise", s.Environment)
	}
	if s.CurrentSystem.Name != "Sol" || s.CurrentSystem.Visits != 1 || !s.CurrentSystem.HasCoordinates {
		t.Errorf("CurrentSystem = %+v", s.CurrentSystem)
	}
	if s.CurrentSystem.Population == nil || *s.CurrentSystem.Population != pop {
		t.Errorf("Population = %v, want %d", s.CurrentSystem.Population, pop)
	}

	// The same jump again while still in supercruise restates nothing.
	if c.Apply(jump) {
		t.Error("repeated jump in supercruise was not suppressed")
	}
	if got := c.Snapshot().CurrentSystem.Visits; got != 1 {
		t.Errorf("Visits after restatement = %d, want 1", got)
	}

	saved, ok := repo.Get("Sol")
	if !ok || saved.Visits != 1 {
		t.Errorf("repository Sol = %+v, want 1 visit", saved)
	}

	// Jumping on stamps the old system and records it as LastSystem.
	c.Apply(event.FSDEngaged{Header: hdr(time.Minute), Target: event.JumpHyperspace})
	c.Apply(event.Jumped{Header: hdr(time.Minute + 20*time.Second), System: "Alpha Centauri", X: 3.03125, Y: -0.09375, Z: 3.15625})
	s = c.Snapshot()
	if s.LastSystem == nil || s.LastSystem.Name != "Sol" {
		t.Fatalf("LastSystem = %+v, want Sol", s.LastSystem)
	}
	saved, _ = repo.Get("Sol")
	if saved.LastVisit == nil || !saved.LastVisit.Equal(t0.Add(time.Minute+20*time.Second)) {
		t.Errorf("Sol LastVisit = %v", saved.LastVisit)
	}
}

func TestJumpToSameSystemFromHyperspacePasses(t *testing.T) {
	c, _, _ := newTestController()
	c.Apply(event.Jumped{Header: hdr(0), System: "Sol"})
	c.Apply(event.FSDEngaged{Header: hdr(time.Minute), Target: event.JumpHyperspace})

	if !c.Apply(event.Jumped{Header: hdr(2 * time.Minute), System: "Sol", Allegiance: "Federation"}) {
		t.Error("same-system jump out of hyperspace was suppressed")
	}
	s := c.Snapshot()
	if s.CurrentSystem.Allegiance != "Federation" {
		t.Errorf("Allegiance = %q, fields not overwritten", s.CurrentSystem.Allegiance)
	}
	if s.CurrentSystem.Visits != 1 {
		t.Errorf("Visits = %d, want 1", s.CurrentSystem.Visits)
	}
}

func TestEnvironmentTransitions(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
		want Environment
	}{
		{"enter supercruise", event.EnteredSupercruise{Header: hdr(0)}, Supercruise},
		{"exit supercruise", event.EnteredNormalSpace{Header: hdr(0)}, NormalSpace},
		{"engage hyperspace", event.FSDEngaged{Header: hdr(0), Target: event.JumpHyperspace}, Hyperspace},
		{"engage supercruise", event.FSDEngaged{Header: hdr(0), Target: event.JumpSupercruise}, Supercruise},
		{"jump complete", event.Jumped{Header: hdr(0), System: "Sol"}, Supercruise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			c.Apply(tt.ev)
			if got := c.Environment(); got != tt.want {
				t.Errorf("Environment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVehicleTransitions(t *testing.T) {
	tests := []struct {
		name     string
		events   []event.Event
		want     Vehicle
		lastPass bool
	}{
		{"srv", []event.Event{event.SRVLaunched{Header: hdr(0), PlayerControlled: true}}, SRV, true},
		{"srv back", []event.Event{event.SRVLaunched{Header: hdr(0)}, event.SRVDocked{Header: hdr(1)}}, Ship, true},
		{"crew fighter", []event.Event{event.FighterLaunched{Header: hdr(0), PlayerControlled: false}}, Ship, true},
		{"own fighter", []event.Event{event.FighterLaunched{Header: hdr(0), PlayerControlled: true}}, Fighter, true},
		{"switch to fighter", []event.Event{event.ControllingFighter{Header: hdr(0)}}, Fighter, true},
		{"switch back", []event.Event{event.ControllingFighter{Header: hdr(0)}, event.ControllingShip{Header: hdr(1)}}, Ship, true},
		{"srv destroyed", []event.Event{event.SRVLaunched{Header: hdr(0)}, event.VehicleDestroyed{Header: hdr(1)}}, Ship, true},
		{"destroyed while in ship", []event.Event{event.VehicleDestroyed{Header: hdr(0)}}, Ship, false},
		{"supercruise from fighter", []event.Event{event.ControllingFighter{Header: hdr(0)}, event.EnteredSupercruise{Header: hdr(1)}}, Ship, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			var pass bool
			for _, ev := range tt.events {
				pass = c.Apply(ev)
			}
			if got := c.Vehicle(); got != tt.want {
				t.Errorf("Vehicle = %v, want %v", got, tt.want)
			}
			if pass != tt.lastPass {
				t.Errorf("last Apply = %v, want %v", pass, tt.lastPass)
			}
		})
	}
}

func TestFirstLocationNeverSuppressed(t *testing.T) {
	c, _, r := newTestController()
	loc := event.Location{Header: hdr(0), System: "Sol", Docked: true, Station: "Abraham Lincoln"}

	if !c.Apply(loc) {
		t.Fatal("first location suppressed")
	}
	if c.CurrentStationName() != "Abraham Lincoln" {
		t.Errorf("CurrentStationName = %q", c.CurrentStationName())
	}
	if len(r.stations) != 1 {
		t.Errorf("refreshed %v, want one refresh", r.stations)
	}

	loc = event.Location{Header: hdr(time.Second), System: "Sol", Docked: true, Station: "Abraham Lincoln"}
	if c.Apply(loc) {
		t.Error("identical later location was not suppressed")
	}
	if len(r.stations) != 1 {
		t.Errorf("restated location refreshed again: %v", r.stations)
	}
}

func TestLocationRestatementRules(t *testing.T) {
	tests := []struct {
		name   string
		first  event.Location
		second event.Location
		want   bool
	}{
		{
			name:   "undocked in same system",
			first:  event.Location{Header: hdr(0), System: "Sol"},
			second: event.Location{Header: hdr(time.Second), System: "Sol"},
			want:   true,
		},
		{
			name:   "undocked after docked",
			first:  event.Location{Header: hdr(0), System: "Sol", Docked: true, Station: "Abraham Lincoln"},
			second: event.Location{Header: hdr(time.Second), System: "Sol"},
			want:   true,
		},
		{
			name:   "docked at another station",
			first:  event.Location{Header: hdr(0), System: "Sol", Docked: true, Station: "Abraham Lincoln"},
			second: event.Location{Header: hdr(time.Second), System: "Sol", Docked: true, Station: "Daedalus"},
			want:   true,
		},
		{
			name:   "docked at current station",
			first:  event.Location{Header: hdr(0), System: "Sol", Docked: true, Station: "Abraham Lincoln"},
			second: event.Location{Header: hdr(time.Second), System: "Sol", Docked: true, Station: "Abraham Lincoln"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			if !c.Apply(tt.first) {
				t.Fatal("first location suppressed")
			}
			if got := c.Apply(tt.second); got != tt.want {
				t.Errorf("second Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUndockRefreshesCommander(t *testing.T) {
	c, _, r := newTestController()
	c.Apply(docked(0, "Sol", "Abraham Lincoln"))
	if r.cmdrs != 0 {
		t.Fatalf("commander refreshed %d times before undocking", r.cmdrs)
	}

	c.Apply(event.Undocked{Header: hdr(time.Minute), Station: "Abraham Lincoln"})
	if r.cmdrs != 1 {
		t.Errorf("commander refreshed %d times after undocking, want 1", r.cmdrs)
	}
	if c.CurrentStationName() != "" {
		t.Errorf("still docked at %q", c.CurrentStationName())
	}
}

func TestCommanderTitle(t *testing.T) {
	tests := []struct {
		name       string
		allegiance string
		federation int
		empire     int
		want       string
	}{
		{"federal space high rank", "Federation", 3, 0, "Midshipman"},
		{"federal space low rank", "Federation", 1, 0, "Commander"},
		{"imperial space high rank", "Empire", 0, 4, "Squire"},
		{"imperial space low rank", "Empire", 0, 3, "Commander"},
		{"independent space", "Independent", 10, 10, "Commander"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			c.Apply(event.CommanderRatings{
				Header:     hdr(0),
				Federation: event.FederationRating(tt.federation),
				Empire:     event.EmpireRating(tt.empire),
			})
			c.Apply(event.Jumped{Header: hdr(time.Second), System: "Somewhere", Allegiance: tt.allegiance})
			if got := c.Snapshot().Commander.Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombatPromotionRestatement(t *testing.T) {
	c, _, _ := newTestController()
	if !c.Apply(event.CombatPromotion{Header: hdr(0), Rating: event.CombatRating(3)}) {
		t.Fatal("first promotion suppressed")
	}
	if rank, known := c.CombatRank(); rank != 3 || !known {
		t.Errorf("CombatRank = %d, %v; want 3, true", rank, known)
	}
	if c.Apply(event.CombatPromotion{Header: hdr(time.Second), Rating: event.CombatRating(3)}) {
		t.Error("promotion to held rank not suppressed")
	}
	if !c.Apply(event.CombatPromotion{Header: hdr(2 * time.Second), Rating: event.CombatRating(4)}) {
		t.Error("real promotion suppressed")
	}
}

func TestFriends(t *testing.T) {
	c, _, _ := newTestController()
	if !c.Apply(event.Friends{Header: hdr(0), Name: "Commander Jameson", Status: "Online"}) {
		t.Error("new friend suppressed")
	}
	if c.Apply(event.Friends{Header: hdr(time.Second), Name: "Commander Jameson", Status: "Offline"}) {
		t.Error("status change passed")
	}
	if c.Apply(event.Friends{Header: hdr(2 * time.Second), Name: "Commander Jameson", Status: "Offline"}) {
		t.Error("unchanged status passed")
	}
	friends := c.Snapshot().Commander.Friends
	if len(friends) != 1 || friends[0].Status != "Offline" {
		t.Errorf("Friends = %+v", friends)
	}
}

func TestFlags(t *testing.T) {
	c, _, _ := newTestController()

	c.Apply(event.CrewJoined{Header: hdr(0), Captain: "Commander Jameson"})
	if !c.Snapshot().InCrew {
		t.Error("InCrew not set")
	}
	c.Apply(event.CrewLeft{Header: hdr(1), Captain: "Commander Jameson"})
	if c.Snapshot().InCrew {
		t.Error("InCrew not cleared")
	}

	c.Apply(event.BondAwarded{Header: hdr(2), AwardingFaction: "Federation", Reward: 1000})
	if !c.Snapshot().InCombatZone {
		t.Error("InCombatZone not set by bond")
	}
	c.Apply(event.EnteredSupercruise{Header: hdr(3)})
	if c.Snapshot().InCombatZone {
		t.Error("InCombatZone not cleared by supercruise")
	}
	c.Apply(event.BondAwarded{Header: hdr(4), AwardingFaction: "Federation", Reward: 1000, CapitalShip: true})
	if c.Snapshot().InCombatZone {
		t.Error("capital ship bond set InCombatZone")
	}

	c.Apply(event.CommanderContinued{Header: hdr(5), Commander: "Jameson", Credits: 1000, Loan: 10})
	c.Apply(event.EnteredCQC{Header: hdr(6)})
	if !c.Snapshot().InCQC {
		t.Error("InCQC not set")
	}
	c.Apply(event.CommanderContinued{Header: hdr(7), Commander: "Jameson", Credits: 2000})
	s := c.Snapshot()
	if s.InCQC || s.Commander.Credits != 2000 || s.Commander.Name != "Jameson" {
		t.Errorf("after LoadGame: InCQC=%v commander=%+v", s.InCQC, s.Commander)
	}
}

func TestIsBeta(t *testing.T) {
	tests := []struct {
		name   string
		header event.FileHeader
		want   bool
	}{
		{"release", event.FileHeader{Version: "2.2", Build: "r131487/r0"}, false},
		{"beta version", event.FileHeader{Version: "2.3 (Beta 1)"}, true},
		{"beta file", event.FileHeader{Filename: "JournalBeta.170220.01.log", Version: "2.2"}, true},
		{"beta build", event.FileHeader{Version: "2.2", Build: "r121645/r121783"}, true},
		{"beta build other version", event.FileHeader{Version: "2.3", Build: "r121645/r121783"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBeta(tt.header); got != tt.want {
				t.Errorf("isBeta(%+v) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestMergeMarket(t *testing.T) {
	c, repo, _ := newTestController()
	c.Apply(docked(0, "Sol", "Abraham Lincoln"))

	data := MarketData{
		Economies:   []string{"Service"},
		Commodities: []Commodity{{Name: "Gold", BuyPrice: 9000, Stock: 12}},
		Outfitting:  []string{"int_fueltank_size1_class3"},
	}
	if c.MergeMarket("Daedalus", data, t0) {
		t.Error("merge into a station the commander is not at succeeded")
	}
	if !c.MergeMarket("Abraham Lincoln", data, t0.Add(time.Minute)) {
		t.Fatal("merge into current station refused")
	}

	data.Commodities[0].Stock = 0
	st := c.Snapshot().CurrentStation
	if len(st.Commodities) != 1 || st.Commodities[0].Stock != 12 {
		t.Errorf("Commodities = %+v; merge aliased caller data", st.Commodities)
	}
	if st.MarketUpdatedAt == nil || !st.MarketUpdatedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("MarketUpdatedAt = %v", st.MarketUpdatedAt)
	}
	saved, _ := repo.Get("Sol")
	if got := saved.Station("Abraham Lincoln"); got == nil || len(got.Economies) != 1 {
		t.Errorf("merged station not saved: %+v", got)
	}
}

func TestApplyProfile(t *testing.T) {
	c, _, _ := newTestController()
	combat := event.CombatRating(5)
	c.ApplyProfile(Profile{Commander: "Jameson", Credits: 5000, Combat: &combat})

	s := c.Snapshot()
	if s.Commander.Name != "Jameson" || s.Commander.Credits != 5000 || s.Commander.Combat.Name != "Master" {
		t.Errorf("Commander = %+v", s.Commander)
	}
	if rank, known := c.CombatRank(); rank != 5 || !known {
		t.Errorf("CombatRank = %d, %v", rank, known)
	}
}

func TestSetHome(t *testing.T) {
	c, repo, _ := newTestController()
	sol, _ := repo.GetOrCreate(context.Background(), "Sol")
	sol.HasCoordinates = true
	if err := repo.Save(context.Background(), sol); err != nil {
		t.Fatal(err)
	}

	if err := c.SetHome(context.Background(), "Sol", "Abraham Lincoln"); err != nil {
		t.Fatal(err)
	}
	c.Apply(event.Jumped{Header: hdr(0), System: "Alpha Centauri", X: 3.03125, Y: -0.09375, Z: 3.15625})

	s := c.Snapshot()
	if s.HomeSystem == nil || s.HomeStation == nil || s.HomeStation.Name != "Abraham Lincoln" {
		t.Fatalf("home = %+v / %+v", s.HomeSystem, s.HomeStation)
	}
	if s.DistanceFromHome == nil || *s.DistanceFromHome != 4.38 {
		t.Errorf("DistanceFromHome = %v, want 4.38", s.DistanceFromHome)
	}
	if saved, _ := repo.Get("Sol"); saved.Station("Abraham Lincoln") == nil {
		t.Error("home station not saved")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c, _, _ := newTestController()
	c.Apply(docked(0, "Sol", "Abraham Lincoln"))

	s := c.Snapshot()
	s.CurrentStation.Name = "mutated"
	s.CurrentSystem.Visits = 99

	if c.CurrentStationName() != "Abraham Lincoln" {
		t.Error("snapshot mutation leaked into controller")
	}
	if got := c.Location(); got.System != "Sol" || got.Station != "Abraham Lincoln" {
		t.Errorf("Location = %+v", got)
	}
}

func TestConcurrentReaders(t *testing.T) {
	c, _, _ := newTestController()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Snapshot()
				_ = c.Location()
				_, _ = c.CombatRank()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			c.Apply(docked(time.Duration(i)*time.Second, "Sol", "Abraham Lincoln"))
		} else {
			c.Apply(event.Undocked{Header: hdr(time.Duration(i) * time.Second)})
		}
	}
	wg.Wait()
}
