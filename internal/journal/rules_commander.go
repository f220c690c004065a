package journal

import (
	"strings"

	"github.com/journal-relay/backend/internal/event"
)

func commanderRules() map[string]rule {
	return map[string]rule{
		"LoadGame": func(r *record) []event.Event {
			commander := r.Str("Commander")
			shipID := r.OptInt("ShipID")
			if shipID == nil {
				return one(event.EnteredCQC{Header: r.header(), Commander: commander})
			}
			return one(event.CommanderContinued{
				Header:       r.header(),
				Commander:    commander,
				ShipID:       *shipID,
				Ship:         r.Str("Ship"),
				ShipName:     r.Str("ShipName"),
				ShipIdent:    r.Str("ShipIdent"),
				Mode:         r.Str("GameMode"),
				Group:        r.Str("Group"),
				Credits:      r.Int("Credits"),
				Loan:         r.Int("Loan"),
				Fuel:         r.OptDecimal("FuelLevel"),
				FuelCapacity: r.OptDecimal("FuelCapacity"),
			})
		},
		"NewCommander": func(r *record) []event.Event {
			return one(event.CommanderStarted{Header: r.header(), Name: r.Str("Name"), Package: r.Str("Package")})
		},
		"ClearSavedGame": func(r *record) []event.Event {
			return one(event.CommanderReset{Header: r.header(), Name: r.Str("Name")})
		},
		"Rank": func(r *record) []event.Event {
			return one(event.CommanderRatings{
				Header:      r.header(),
				Combat:      event.CombatRating(int(r.Int("Combat"))),
				Trade:       event.TradeRating(int(r.Int("Trade"))),
				Exploration: event.ExplorationRating(int(r.Int("Explore"))),
				CQC:         event.CQCRating(int(r.Int("CQC"))),
				Empire:      event.EmpireRating(int(r.Int("Empire"))),
				Federation:  event.FederationRating(int(r.Int("Federation"))),
			})
		},
		"Progress": func(r *record) []event.Event {
			return one(event.CommanderProgress{
				Header:      r.header(),
				Combat:      r.Int("Combat"),
				Trade:       r.Int("Trade"),
				Exploration: r.Int("Explore"),
				CQC:         r.Int("CQC"),
				Empire:      r.Int("Empire"),
				Federation:  r.Int("Federation"),
			})
		},
		"Promotion": promotion,
		"Friends": func(r *record) []event.Event {
			return one(event.Friends{Header: r.header(), Name: cleanCommanderName(r.Str("Name")), Status: r.Str("Status")})
		},
		"Fileheader": fileHeader,
		"LaunchSRV": func(r *record) []event.Event {
			return one(event.SRVLaunched{Header: r.header(), Loadout: r.Str("Loadout"), PlayerControlled: r.Bool("PlayerControlled")})
		},
		"DockSRV": func(r *record) []event.Event {
			return one(event.SRVDocked{Header: r.header()})
		},
		"LaunchFighter": func(r *record) []event.Event {
			return one(event.FighterLaunched{Header: r.header(), Loadout: r.Str("Loadout"), PlayerControlled: r.Bool("PlayerControlled")})
		},
		"DockFighter": func(r *record) []event.Event {
			return one(event.FighterDocked{Header: r.header()})
		},
		"VehicleSwitch": func(r *record) []event.Event {
			switch r.Str("To") {
			case "Fighter":
				return one(event.ControllingFighter{Header: r.header()})
			case "Mothership":
				return one(event.ControllingShip{Header: r.header()})
			case "":
				// A switch to nowhere means the SRV or fighter was lost. In
				// the ship there is nothing to report.
				if r.d.state != nil && r.d.state.InShip() {
					return nil
				}
				return one(event.VehicleDestroyed{Header: r.header()})
			}
			return nil
		},
	}
}

// promotion reports the first ladder present. A combat promotion to the rank
// already held is a restatement and yields nothing.
func promotion(r *record) []event.Event {
	switch {
	case r.Has("Combat"):
		rank := int(r.Int("Combat"))
		if r.d.state != nil {
			if known, ok := r.d.state.CombatRank(); ok && known == rank {
				return nil
			}
		}
		return one(event.CombatPromotion{Header: r.header(), Rating: event.CombatRating(rank)})
	case r.Has("Trade"):
		return one(event.TradePromotion{Header: r.header(), Rating: event.TradeRating(int(r.Int("Trade")))})
	case r.Has("Explore"):
		return one(event.ExplorationPromotion{Header: r.header(), Rating: event.ExplorationRating(int(r.Int("Explore")))})
	case r.Has("Federation"):
		return one(event.FederationPromotion{Header: r.header(), Rating: event.FederationRating(int(r.Int("Federation")))})
	case r.Has("Empire"):
		return one(event.EmpirePromotion{Header: r.header(), Rating: event.EmpireRating(int(r.Int("Empire")))})
	}
	return nil
}

func fileHeader(r *record) []event.Event {
	return one(event.FileHeader{
		Header:   r.header(),
		Filename: r.d.currentFileName(),
		Version:  r.Str("gameversion"),
		Build:    strings.ReplaceAll(r.Str("build"), " ", ""),
		Language: r.Str("language"),
		Part:     r.OptInt("part"),
	})
}
