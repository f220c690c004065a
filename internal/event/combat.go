package event

// FactionReward is one faction's share of a bounty or voucher.
type FactionReward struct {
	Faction string `json:"faction"`
	Amount  int64  `json:"amount"`
}

type BountyAwarded struct {
	Header
	Target        string          `json:"target,omitempty"`
	VictimFaction string          `json:"victimFaction,omitempty"`
	Reward        int64           `json:"reward"`
	Rewards       []FactionReward `json:"rewards,omitempty"`
	Shared        bool            `json:"shared"`
}

func (BountyAwarded) Kind() Kind { return KindBountyAwarded }

// BondAwarded covers both combat bonds (conflict zones) and capital ship
// bonds.
type BondAwarded struct {
	Header
	AwardingFaction string `json:"awardingFaction"`
	VictimFaction   string `json:"victimFaction,omitempty"`
	Reward          int64  `json:"reward"`
	CapitalShip     bool   `json:"capitalShip"`
}

func (BondAwarded) Kind() Kind { return KindBondAwarded }

type DataVoucherAwarded struct {
	Header
	PayeeFaction  string `json:"payeeFaction"`
	VictimFaction string `json:"victimFaction,omitempty"`
	Reward        int64  `json:"reward"`
}

func (DataVoucherAwarded) Kind() Kind { return KindDataVoucherAwarded }

type FineIncurred struct {
	Header
	Crime   string `json:"crime"`
	Faction string `json:"faction,omitempty"`
	Victim  string `json:"victim,omitempty"`
	Fine    int64  `json:"fine"`
}

func (FineIncurred) Kind() Kind { return KindFineIncurred }

type BountyIncurred struct {
	Header
	Crime   string `json:"crime"`
	Faction string `json:"faction,omitempty"`
	Victim  string `json:"victim,omitempty"`
	Bounty  int64  `json:"bounty"`
}

func (BountyIncurred) Kind() Kind { return KindBountyIncurred }

// ShipInterdicted fires when someone attempts to interdict the commander.
// Succeeded is false when the commander escaped.
type ShipInterdicted struct {
	Header
	Succeeded   bool    `json:"succeeded"`
	Submitted   bool    `json:"submitted"`
	IsPlayer    bool    `json:"isPlayer"`
	Interdictor string  `json:"interdictor,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
	Faction     string  `json:"faction,omitempty"`
	Power       string  `json:"power,omitempty"`
}

func (ShipInterdicted) Kind() Kind { return KindShipInterdicted }

// ShipInterdiction fires when the commander interdicts someone else.
type ShipInterdiction struct {
	Header
	Succeeded bool    `json:"succeeded"`
	IsPlayer  bool    `json:"isPlayer"`
	Target    string  `json:"target,omitempty"`
	Rating    *Rating `json:"rating,omitempty"`
	Faction   string  `json:"faction,omitempty"`
	Power     string  `json:"power,omitempty"`
}

func (ShipInterdiction) Kind() Kind { return KindShipInterdiction }

type Killed struct {
	Header
	Victim string  `json:"victim"`
	Rating *Rating `json:"rating,omitempty"`
}

func (Killed) Kind() Kind { return KindKilled }

type Killer struct {
	Name   string `json:"name"`
	Ship   string `json:"ship,omitempty"`
	Rating Rating `json:"rating"`
}

type Died struct {
	Header
	Killers []Killer `json:"killers,omitempty"`
}

func (Died) Kind() Kind { return KindDied }

type ShipRepurchased struct {
	Header
	Price int64 `json:"price"`
}

func (ShipRepurchased) Kind() Kind { return KindShipRepurchased }

type ShieldsUp struct{ Header }

func (ShieldsUp) Kind() Kind { return KindShieldsUp }

type ShieldsDown struct{ Header }

func (ShieldsDown) Kind() Kind { return KindShieldsDown }

// HullDamaged reports remaining hull health as a percentage. NPCFighter is
// set when the damage was taken by a fighter flown by crew rather than the
// commander.
type HullDamaged struct {
	Header
	Health     float64 `json:"health"`
	NPCFighter bool    `json:"npcFighter"`
}

func (HullDamaged) Kind() Kind { return KindHullDamaged }

type HeatWarning struct{ Header }

func (HeatWarning) Kind() Kind { return KindHeatWarning }

type HeatDamage struct{ Header }

func (HeatDamage) Kind() Kind { return KindHeatDamage }

type CockpitBreached struct{ Header }

func (CockpitBreached) Kind() Kind { return KindCockpitBreached }

type SelfDestruct struct{ Header }

func (SelfDestruct) Kind() Kind { return KindSelfDestruct }

type ShipShutdown struct{ Header }

func (ShipShutdown) Kind() Kind { return KindShipShutdown }
