package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

// Refresher is told, after the controller has released its lock, about
// every genuine docking and every undocking.
type Refresher interface {
	RefreshStation(name string)
	RefreshCommander()
}

type trigger int

const (
	enterSupercruise trigger = iota
	fsdHyperspace
	fsdSupercruise
	jumpComplete
	exitSupercruise
)

// transitions is the only way Environment changes.
var transitions = map[trigger]Environment{
	enterSupercruise: Supercruise,
	fsdHyperspace:    Hyperspace,
	fsdSupercruise:   Supercruise,
	jumpComplete:     Supercruise,
	exitSupercruise:  NormalSpace,
}

// betaBuilds are release builds that shipped to the beta servers.
var betaBuilds = []string{"r121645/r121783", "r129516/r129516"}

// Profile is commander data learned from the profile source.
type Profile struct {
	Commander   string
	Credits     int64
	Loan        int64
	Combat      *event.Rating
	Trade       *event.Rating
	Exploration *event.Rating
	CQC         *event.Rating
	Empire      *event.Rating
	Federation  *event.Rating
}

// Controller owns the session state and applies events to it. All methods
// are safe for concurrent use.
type Controller struct {
	log  zerolog.Logger
	repo Repository
	now  func() time.Time

	mu           sync.RWMutex
	state        State
	refresher    Refresher
	ratingsKnown bool
	seenLocation bool
	refresh      string // station to refresh once the lock is released
	refreshCmdr  bool
}

func NewController(logger zerolog.Logger, repo Repository) *Controller {
	return &Controller{
		log:   logger.With().Str("component", "session").Logger(),
		repo:  repo,
		now:   time.Now,
		state: State{Commander: Commander{Title: "Commander"}},
	}
}

// SetRefresher installs the docking hook. Pass nil to remove it.
func (c *Controller) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

// SetHome resolves the configured home system and station.
func (c *Controller) SetHome(ctx context.Context, system, station string) error {
	if system == "" {
		return nil
	}
	sys, err := c.repo.GetOrCreate(ctx, system)
	if err != nil {
		return fmt.Errorf("loading home system %s: %w", system, err)
	}
	var st *Station
	if station != "" {
		existed := sys.Station(station) != nil
		st = sys.stationOrCreate(station)
		if !existed {
			if err := c.repo.Save(ctx, sys); err != nil {
				return fmt.Errorf("saving home system %s: %w", system, err)
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.HomeSystem = sys
	c.state.HomeStation = st
	c.state.DistanceFromHome = c.state.CurrentSystem.DistanceTo(sys)
	return nil
}

// Apply updates state from ev and reports whether the event should go on to
// responders. A false result marks a restatement of what is already known.
func (c *Controller) Apply(ev event.Event) bool {
	c.mu.Lock()
	pass := c.apply(ev)
	station, cmdr, refresher := c.refresh, c.refreshCmdr, c.refresher
	c.refresh, c.refreshCmdr = "", false
	c.mu.Unlock()

	if refresher != nil {
		if station != "" {
			refresher.RefreshStation(station)
		}
		if cmdr {
			refresher.RefreshCommander()
		}
	}
	return pass
}

func (c *Controller) apply(ev event.Event) bool {
	switch e := ev.(type) {
	case event.EnteredSupercruise:
		c.transition(enterSupercruise)
		c.state.Vehicle = Ship
		c.state.InCombatZone = false
	case event.EnteredNormalSpace:
		c.transition(exitSupercruise)
	case event.FSDEngaged:
		if e.Target == event.JumpHyperspace {
			c.transition(fsdHyperspace)
			c.state.CurrentStation = nil
		} else {
			c.transition(fsdSupercruise)
		}
		c.state.Vehicle = Ship
		c.state.InCombatZone = false
	case event.Jumped:
		return c.jumped(e)
	case event.Location:
		return c.location(e)
	case event.Docked:
		return c.docked(e)
	case event.Undocked:
		c.state.CurrentStation = nil
		c.refreshCmdr = true

	case event.SRVLaunched:
		c.state.Vehicle = SRV
	case event.FighterLaunched:
		if e.PlayerControlled {
			c.state.Vehicle = Fighter
		}
	case event.ControllingFighter:
		c.state.Vehicle = Fighter
	case event.SRVDocked, event.FighterDocked, event.ControllingShip:
		c.state.Vehicle = Ship
	case event.VehicleDestroyed:
		if c.state.Vehicle == Ship {
			return false
		}
		c.state.Vehicle = Ship

	case event.CommanderContinued:
		c.state.Commander.Name = e.Commander
		c.state.Commander.Credits = e.Credits
		c.state.Commander.Loan = e.Loan
		c.state.InCQC = false
	case event.EnteredCQC:
		c.state.InCQC = true
	case event.CommanderRatings:
		cmdr := &c.state.Commander
		cmdr.Combat, cmdr.Trade, cmdr.Exploration = e.Combat, e.Trade, e.Exploration
		cmdr.CQC, cmdr.Empire, cmdr.Federation = e.CQC, e.Empire, e.Federation
		c.ratingsKnown = true
		c.updateTitle()
	case event.CombatPromotion:
		if c.ratingsKnown && c.state.Commander.Combat.Rank == e.Rating.Rank {
			return false
		}
		c.state.Commander.Combat = e.Rating
		c.ratingsKnown = true
	case event.TradePromotion:
		c.state.Commander.Trade = e.Rating
	case event.ExplorationPromotion:
		c.state.Commander.Exploration = e.Rating
	case event.FederationPromotion:
		c.state.Commander.Federation = e.Rating
		c.updateTitle()
	case event.EmpirePromotion:
		c.state.Commander.Empire = e.Rating
		c.updateTitle()
	case event.Friends:
		return c.friend(e)

	case event.CrewJoined:
		c.state.InCrew = true
	case event.CrewLeft:
		c.state.InCrew = false
	case event.FileHeader:
		c.state.InBeta = isBeta(e)
	case event.BondAwarded:
		if !e.CapitalShip {
			c.state.InCombatZone = true
		}
	}
	return true
}

func (c *Controller) transition(t trigger) {
	c.state.Environment = transitions[t]
}

func (c *Controller) jumped(e event.Jumped) bool {
	same := c.state.CurrentSystem != nil && c.state.CurrentSystem.Name == e.System
	if same && c.state.Environment == Supercruise {
		c.log.Debug().Str("system", e.System).Msg("Suppressing repeated jump")
		return false
	}
	from := c.state.Environment

	c.transition(jumpComplete)
	c.state.CurrentStation = nil
	c.state.InCombatZone = false
	if !same {
		c.arrive(e.System, e.Timestamp())
	}

	sys := c.state.CurrentSystem
	if sys == nil {
		return true
	}
	sys.X, sys.Y, sys.Z, sys.HasCoordinates = e.X, e.Y, e.Z, true
	c.overwriteSystem(sys, e.Allegiance, e.Faction, e.Economy, e.Government, e.Security, e.Population)
	if !same || from == NormalSpace {
		sys.Visits++
		c.save(sys)
	}
	c.updateTitle()
	c.updateDistance()
	return true
}

func (c *Controller) location(e event.Location) bool {
	first := !c.seenLocation
	c.seenLocation = true

	same := c.state.CurrentSystem != nil && c.state.CurrentSystem.Name == e.System
	wasDockedAt := ""
	if c.state.CurrentStation != nil {
		wasDockedAt = c.state.CurrentStation.Name
	}

	if !same {
		c.arrive(e.System, e.Timestamp())
	}
	sys := c.state.CurrentSystem
	if sys == nil {
		return true
	}
	sys.X, sys.Y, sys.Z, sys.HasCoordinates = e.X, e.Y, e.Z, true
	c.overwriteSystem(sys, e.Allegiance, e.Faction, e.Economy, e.Government, e.Security, e.Population)
	if !same {
		sys.Visits++
	}

	if e.Docked && e.Station != "" {
		st := sys.stationOrCreate(e.Station)
		if e.StationType != "" {
			st.Model = e.StationType
		}
		c.state.CurrentStation = st
		c.state.Vehicle = Ship
		if first || wasDockedAt != e.Station {
			c.refresh = e.Station
		}
	} else {
		c.state.CurrentStation = nil
	}
	c.save(sys)
	c.updateTitle()
	c.updateDistance()

	// Only a later report of the station we are already docked at is a
	// restatement.
	if !first && same && e.Docked && wasDockedAt != "" && wasDockedAt == e.Station {
		return false
	}
	return true
}

func (c *Controller) docked(e event.Docked) bool {
	sys := c.state.CurrentSystem
	if cur := c.state.CurrentStation; cur != nil && cur.Name == e.Station &&
		(e.System == "" || sys == nil || sys.Name == e.System) {
		c.log.Debug().Str("station", e.Station).Msg("Suppressing repeated docking")
		return false
	}

	if e.System != "" && (sys == nil || sys.Name != e.System) {
		c.arrive(e.System, e.Timestamp())
		sys = c.state.CurrentSystem
	}

	var st *Station
	if sys != nil {
		st = sys.stationOrCreate(e.Station)
	} else {
		st = &Station{Name: e.Station, System: e.System}
	}
	st.Faction = e.Faction
	st.Government = e.Government
	st.Allegiance = e.Allegiance
	st.State = e.StationState
	st.Model = e.StationModel
	st.Services = ParseServices(e.Services)
	if e.DistanceFromStar != nil {
		st.DistanceFromStar = cloneFloat(e.DistanceFromStar)
	}

	c.state.CurrentStation = st
	c.state.Vehicle = Ship
	if sys != nil {
		c.save(sys)
	}
	c.refresh = e.Station
	return true
}

// arrive moves the session to the named system, stamping and saving the one
// being left.
func (c *Controller) arrive(name string, at time.Time) {
	ctx := context.Background()
	if old := c.state.CurrentSystem; old != nil {
		t := at
		old.LastVisit = &t
		c.save(old)
		c.state.LastSystem = old
	}
	sys, err := c.repo.GetOrCreate(ctx, name)
	if err != nil {
		c.log.Error().Err(err).Str("system", name).Msg("Failed to load system")
		sys = &StarSystem{Name: name}
	}
	c.state.CurrentSystem = sys
}

func (c *Controller) overwriteSystem(sys *StarSystem, allegiance, faction, economy, government, security string, population *int64) {
	sys.Allegiance = allegiance
	sys.Faction = faction
	sys.Economy = economy
	sys.Government = government
	sys.Security = security
	if population != nil {
		p := *population
		sys.Population = &p
	}
}

func (c *Controller) save(sys *StarSystem) {
	if err := c.repo.Save(context.Background(), sys); err != nil {
		c.log.Error().Err(err).Str("system", sys.Name).Msg("Failed to save system")
	}
}

func (c *Controller) friend(e event.Friends) bool {
	friends := c.state.Commander.Friends
	for i := range friends {
		if friends[i].Name != e.Name {
			continue
		}
		friends[i].Status = e.Status
		return false
	}
	c.state.Commander.Friends = append(friends, Friend{Name: e.Name, Status: e.Status})
	return true
}

func (c *Controller) updateTitle() {
	cmdr := &c.state.Commander
	allegiance := ""
	if c.state.CurrentSystem != nil {
		allegiance = c.state.CurrentSystem.Allegiance
	}
	switch {
	case allegiance == "Federation" && cmdr.Federation.Rank > 1:
		cmdr.Title = cmdr.Federation.Name
	case allegiance == "Empire" && cmdr.Empire.Rank > 3:
		cmdr.Title = cmdr.Empire.Name
	default:
		cmdr.Title = "Commander"
	}
}

func (c *Controller) updateDistance() {
	c.state.DistanceFromHome = c.state.CurrentSystem.DistanceTo(c.state.HomeSystem)
}

func isBeta(e event.FileHeader) bool {
	if strings.Contains(e.Filename, "Beta") || strings.Contains(e.Version, "Beta") {
		return true
	}
	if !strings.Contains(e.Version, "2.2") {
		return false
	}
	for _, b := range betaBuilds {
		if e.Build == b {
			return true
		}
	}
	return false
}

// MergeMarket records station data fetched for required. It refuses, and
// returns false, when the commander is no longer docked there.
func (c *Controller) MergeMarket(required string, m MarketData, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state.CurrentStation
	if st == nil || st.Name != required {
		return false
	}
	st.Economies = cloneStrings(m.Economies)
	st.Commodities = append([]Commodity(nil), m.Commodities...)
	st.ProhibitedGoods = cloneStrings(m.ProhibitedGoods)
	st.Outfitting = cloneStrings(m.Outfitting)
	st.Shipyard = cloneStrings(m.Shipyard)
	t := at.UTC()
	st.MarketUpdatedAt = &t
	if c.state.CurrentSystem != nil {
		c.save(c.state.CurrentSystem)
	}
	return true
}

// ApplyProfile overwrites commander details with data from the profile
// source. Empty and nil fields are left alone.
func (c *Controller) ApplyProfile(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmdr := &c.state.Commander
	if p.Commander != "" {
		cmdr.Name = p.Commander
	}
	cmdr.Credits = p.Credits
	cmdr.Loan = p.Loan
	for _, r := range []struct {
		dst *event.Rating
		src *event.Rating
	}{
		{&cmdr.Combat, p.Combat},
		{&cmdr.Trade, p.Trade},
		{&cmdr.Exploration, p.Exploration},
		{&cmdr.CQC, p.CQC},
		{&cmdr.Empire, p.Empire},
		{&cmdr.Federation, p.Federation},
	} {
		if r.src != nil {
			*r.dst = *r.src
		}
	}
	if p.Combat != nil {
		c.ratingsKnown = true
	}
	c.updateTitle()
}

// Snapshot returns a deep copy of the state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Location is where the commander is now.
func (c *Controller) Location() event.Place {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var p event.Place
	if c.state.CurrentSystem != nil {
		p.System = c.state.CurrentSystem.Name
	}
	if c.state.CurrentStation != nil {
		p.Station = c.state.CurrentStation.Name
	}
	return p
}

func (c *Controller) CurrentStationName() string {
	return c.Location().Station
}

func (c *Controller) CurrentSystemName() string {
	return c.Location().System
}

// CombatRank reports the known combat rank. known is false until ratings
// have been seen.
func (c *Controller) CombatRank() (rank int, known bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Commander.Combat.Rank, c.ratingsKnown
}

func (c *Controller) Vehicle() Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Vehicle
}

func (c *Controller) InShip() bool {
	return c.Vehicle() == Ship
}

func (c *Controller) Environment() Environment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Environment
}
