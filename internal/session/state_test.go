package session

import (
	"encoding/json"
	"testing"
)

func TestParseServices(t *testing.T) {
	s := ParseServices([]string{"Refuel", "Commodities", "BlackMarket", "Dock", "Refuel"})
	if !s.Has(ServiceRefuel) || !s.Has(ServiceMarket) || !s.Has(ServiceBlackMarket) {
		t.Errorf("ParseServices missing flags: %b", s)
	}
	if s.Has(ServiceShipyard) || s.Has(ServiceRearm) {
		t.Errorf("ParseServices set unexpected flags: %b", s)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["Refuel","Commodities","BlackMarket"]` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestEnvironmentJSON(t *testing.T) {
	tests := []struct {
		env  Environment
		want string
	}{
		{NormalSpace, `"normal_space"`},
		{Supercruise, `"supercruise"`},
		{Hyperspace, `"hyperspace"`},
	}
	for _, tt := range tests {
		t.Run(tt.env.String(), func(t *testing.T) {
			data, err := json.Marshal(tt.env)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}
			var back Environment
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if back != tt.env {
				t.Errorf("round trip = %v, want %v", back, tt.env)
			}
		})
	}
	if Environment(99).String() != "unknown" {
		t.Errorf("out of range String() = %q", Environment(99).String())
	}
}

func TestVehicleJSON(t *testing.T) {
	data, err := json.Marshal(SRV)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"srv"` {
		t.Errorf("Marshal(SRV) = %s", data)
	}
}

func TestStateCloneKeepsStationInSystem(t *testing.T) {
	sys := &StarSystem{Name: "Sol"}
	st := sys.stationOrCreate("Abraham Lincoln")
	s := State{CurrentSystem: sys, CurrentStation: st}

	c := s.Clone()
	if c.CurrentStation == st {
		t.Fatal("Clone shared the station pointer")
	}
	if c.CurrentStation != c.CurrentSystem.Stations[0] {
		t.Error("cloned CurrentStation is not one of the cloned system's stations")
	}

	c.CurrentStation.Faction = "mutated"
	if st.Faction != "" {
		t.Error("mutation of clone leaked into original")
	}
}

func TestStateCloneCopiesFriends(t *testing.T) {
	s := State{Commander: Commander{Friends: []Friend{{Name: "Jameson", Status: "Online"}}}}
	c := s.Clone()
	c.Commander.Friends[0].Status = "Offline"
	if s.Commander.Friends[0].Status != "Online" {
		t.Error("Clone did not copy friends; mutation leaked")
	}
}

func TestDistanceTo(t *testing.T) {
	sol := &StarSystem{Name: "Sol", HasCoordinates: true}
	alpha := &StarSystem{Name: "Alpha Centauri", X: 3.03125, Y: -0.09375, Z: 3.15625, HasCoordinates: true}
	unknown := &StarSystem{Name: "Nowhere"}

	d := sol.DistanceTo(alpha)
	if d == nil || *d != 4.38 {
		t.Errorf("DistanceTo = %v, want 4.38", d)
	}
	if sol.DistanceTo(unknown) != nil {
		t.Error("DistanceTo without coordinates should be nil")
	}
	var none *StarSystem
	if none.DistanceTo(sol) != nil {
		t.Error("DistanceTo on nil system should be nil")
	}
}
