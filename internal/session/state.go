package session

import (
	"encoding/json"
	"math"
	"time"

	"github.com/journal-relay/backend/internal/event"
)

type Environment int

const (
	NormalSpace Environment = iota
	Supercruise
	Hyperspace
)

var environmentNames = map[Environment]string{
	NormalSpace: "normal_space",
	Supercruise: "supercruise",
	Hyperspace:  "hyperspace",
}

var environmentFromName = map[string]Environment{
	"normal_space": NormalSpace,
	"supercruise":  Supercruise,
	"hyperspace":   Hyperspace,
}

func (e Environment) String() string {
	if s, ok := environmentNames[e]; ok {
		return s
	}
	return "unknown"
}

func (e Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Environment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := environmentFromName[s]; ok {
		*e = v
	}
	return nil
}

type Vehicle int

const (
	Ship Vehicle = iota
	SRV
	Fighter
)

var vehicleNames = map[Vehicle]string{
	Ship:    "ship",
	SRV:     "srv",
	Fighter: "fighter",
}

var vehicleFromName = map[string]Vehicle{
	"ship":    Ship,
	"srv":     SRV,
	"fighter": Fighter,
}

func (v Vehicle) String() string {
	if s, ok := vehicleNames[v]; ok {
		return s
	}
	return "unknown"
}

func (v Vehicle) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if x, ok := vehicleFromName[s]; ok {
		*v = x
	}
	return nil
}

// Services is the set of facilities a station offers.
type Services uint16

const (
	ServiceRefuel Services = 1 << iota
	ServiceRearm
	ServiceRepair
	ServiceOutfitting
	ServiceShipyard
	ServiceMarket
	ServiceBlackMarket
)

// serviceNames maps journal service identifiers to flags. The order is the
// JSON order.
var serviceNames = []struct {
	name string
	flag Services
}{
	{"Refuel", ServiceRefuel},
	{"Rearm", ServiceRearm},
	{"Repair", ServiceRepair},
	{"Outfitting", ServiceOutfitting},
	{"Shipyard", ServiceShipyard},
	{"Commodities", ServiceMarket},
	{"BlackMarket", ServiceBlackMarket},
}

// ParseServices maps a journal service list to flags. Unknown entries are
// ignored.
func ParseServices(names []string) Services {
	var s Services
	for _, n := range names {
		for _, known := range serviceNames {
			if known.name == n {
				s |= known.flag
			}
		}
	}
	return s
}

func (s Services) Has(flag Services) bool { return s&flag == flag }

func (s Services) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(serviceNames))
	for _, known := range serviceNames {
		if s.Has(known.flag) {
			names = append(names, known.name)
		}
	}
	return json.Marshal(names)
}

func (s *Services) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = ParseServices(names)
	return nil
}

type Commodity struct {
	Name      string `json:"name"`
	BuyPrice  int64  `json:"buyPrice"`
	SellPrice int64  `json:"sellPrice"`
	Stock     int64  `json:"stock"`
	Demand    int64  `json:"demand"`
}

// MarketData is what the convergence loop learns about a station from the
// profile source.
type MarketData struct {
	Economies       []string
	Commodities     []Commodity
	ProhibitedGoods []string
	Outfitting      []string
	Shipyard        []string
}

type Station struct {
	Name             string      `json:"name"`
	System           string      `json:"system"`
	Model            string      `json:"model,omitempty"`
	Faction          string      `json:"faction,omitempty"`
	Government       string      `json:"government,omitempty"`
	Allegiance       string      `json:"allegiance,omitempty"`
	State            string      `json:"state,omitempty"`
	Services         Services    `json:"services"`
	DistanceFromStar *float64    `json:"distanceFromStar,omitempty"`
	Economies        []string    `json:"economies,omitempty"`
	Commodities      []Commodity `json:"commodities,omitempty"`
	ProhibitedGoods  []string    `json:"prohibitedGoods,omitempty"`
	Outfitting       []string    `json:"outfitting,omitempty"`
	Shipyard         []string    `json:"shipyard,omitempty"`
	MarketUpdatedAt  *time.Time  `json:"marketUpdatedAt,omitempty"`
}

// Clone returns a deep copy of the station.
func (s *Station) Clone() *Station {
	c := *s
	c.DistanceFromStar = cloneFloat(s.DistanceFromStar)
	c.Economies = cloneStrings(s.Economies)
	c.ProhibitedGoods = cloneStrings(s.ProhibitedGoods)
	c.Outfitting = cloneStrings(s.Outfitting)
	c.Shipyard = cloneStrings(s.Shipyard)
	if s.Commodities != nil {
		c.Commodities = append([]Commodity(nil), s.Commodities...)
	}
	if s.MarketUpdatedAt != nil {
		t := *s.MarketUpdatedAt
		c.MarketUpdatedAt = &t
	}
	return &c
}

type StarSystem struct {
	Name           string     `json:"name"`
	X              float64    `json:"x"`
	Y              float64    `json:"y"`
	Z              float64    `json:"z"`
	HasCoordinates bool       `json:"hasCoordinates"`
	Allegiance     string     `json:"allegiance,omitempty"`
	Faction        string     `json:"faction,omitempty"`
	Economy        string     `json:"economy,omitempty"`
	Government     string     `json:"government,omitempty"`
	Security       string     `json:"security,omitempty"`
	Population     *int64     `json:"population,omitempty"`
	Visits         int        `json:"visits"`
	LastVisit      *time.Time `json:"lastVisit,omitempty"`
	Stations       []*Station `json:"stations,omitempty"`
}

// Station returns the named station, or nil.
func (s *StarSystem) Station(name string) *Station {
	for _, st := range s.Stations {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// stationOrCreate returns the named station, adding it when unknown.
func (s *StarSystem) stationOrCreate(name string) *Station {
	if st := s.Station(name); st != nil {
		return st
	}
	st := &Station{Name: name, System: s.Name}
	s.Stations = append(s.Stations, st)
	return st
}

// DistanceTo is the straight-line distance in light years, or nil when
// either system has no known position.
func (s *StarSystem) DistanceTo(other *StarSystem) *float64 {
	if s == nil || other == nil || !s.HasCoordinates || !other.HasCoordinates {
		return nil
	}
	dx, dy, dz := s.X-other.X, s.Y-other.Y, s.Z-other.Z
	d := math.Round(math.Sqrt(dx*dx+dy*dy+dz*dz)*100) / 100
	return &d
}

// Clone returns a deep copy of the system and its stations.
func (s *StarSystem) Clone() *StarSystem {
	c := *s
	if s.Population != nil {
		p := *s.Population
		c.Population = &p
	}
	if s.LastVisit != nil {
		t := *s.LastVisit
		c.LastVisit = &t
	}
	if s.Stations != nil {
		c.Stations = make([]*Station, len(s.Stations))
		for i, st := range s.Stations {
			c.Stations[i] = st.Clone()
		}
	}
	return &c
}

type Friend struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Commander struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Credits     int64        `json:"credits"`
	Loan        int64        `json:"loan"`
	Combat      event.Rating `json:"combat"`
	Trade       event.Rating `json:"trade"`
	Exploration event.Rating `json:"exploration"`
	CQC         event.Rating `json:"cqc"`
	Empire      event.Rating `json:"empire"`
	Federation  event.Rating `json:"federation"`
	Friends     []Friend     `json:"friends,omitempty"`
}

// State is the canonical session state. CurrentStation, when set, is one of
// CurrentSystem's stations; HomeStation likewise belongs to HomeSystem.
type State struct {
	CurrentSystem    *StarSystem `json:"currentSystem,omitempty"`
	LastSystem       *StarSystem `json:"lastSystem,omitempty"`
	HomeSystem       *StarSystem `json:"homeSystem,omitempty"`
	CurrentStation   *Station    `json:"currentStation,omitempty"`
	HomeStation      *Station    `json:"homeStation,omitempty"`
	Environment      Environment `json:"environment"`
	Vehicle          Vehicle     `json:"vehicle"`
	Commander        Commander   `json:"commander"`
	DistanceFromHome *float64    `json:"distanceFromHome,omitempty"`
	InCombatZone     bool        `json:"inCombatZone"`
	InCrew           bool        `json:"inCrew"`
	InBeta           bool        `json:"inBeta"`
	InCQC            bool        `json:"inCQC"`
}

// Docked reports whether the commander is at a station.
func (s *State) Docked() bool { return s.CurrentStation != nil }

// Clone returns a deep copy. Station pointers in the copy refer to the
// copied systems.
func (s *State) Clone() State {
	c := *s
	c.CurrentSystem, c.CurrentStation = cloneWithStation(s.CurrentSystem, s.CurrentStation)
	c.HomeSystem, c.HomeStation = cloneWithStation(s.HomeSystem, s.HomeStation)
	if s.LastSystem != nil {
		c.LastSystem = s.LastSystem.Clone()
	}
	c.DistanceFromHome = cloneFloat(s.DistanceFromHome)
	if s.Commander.Friends != nil {
		c.Commander.Friends = append([]Friend(nil), s.Commander.Friends...)
	}
	return c
}

func cloneWithStation(sys *StarSystem, st *Station) (*StarSystem, *Station) {
	var sysCopy *StarSystem
	if sys != nil {
		sysCopy = sys.Clone()
	}
	if st == nil {
		return sysCopy, nil
	}
	if sysCopy != nil {
		for i, candidate := range sys.Stations {
			if candidate == st {
				return sysCopy, sysCopy.Stations[i]
			}
		}
	}
	return sysCopy, st.Clone()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
