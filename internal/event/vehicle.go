package event

type SRVLaunched struct {
	Header
	Loadout          string `json:"loadout,omitempty"`
	PlayerControlled bool   `json:"playerControlled"`
}

func (SRVLaunched) Kind() Kind { return KindSRVLaunched }

type SRVDocked struct{ Header }

func (SRVDocked) Kind() Kind { return KindSRVDocked }

type FighterLaunched struct {
	Header
	Loadout          string `json:"loadout,omitempty"`
	PlayerControlled bool   `json:"playerControlled"`
}

func (FighterLaunched) Kind() Kind { return KindFighterLaunched }

type FighterDocked struct{ Header }

func (FighterDocked) Kind() Kind { return KindFighterDocked }

type ControllingFighter struct{ Header }

func (ControllingFighter) Kind() Kind { return KindControllingFighter }

type ControllingShip struct{ Header }

func (ControllingShip) Kind() Kind { return KindControllingShip }

// VehicleDestroyed fires when the SRV or fighter the commander was in is
// lost.
type VehicleDestroyed struct{ Header }

func (VehicleDestroyed) Kind() Kind { return KindVehicleDestroyed }
