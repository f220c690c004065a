package journal

import "github.com/journal-relay/backend/internal/event"

// trainingSystem is the tutorial instance; locations there are not real.
const trainingSystem = "Training"

func navigationRules() map[string]rule {
	return map[string]rule{
		"Docked": func(r *record) []event.Event {
			return one(event.Docked{
				Header:           r.header(),
				System:           r.Str("StarSystem"),
				Station:          r.Str("StationName"),
				StationModel:     r.Str("StationType"),
				StationState:     r.Str("StationState"),
				Allegiance:       r.Str("StationAllegiance"),
				Faction:          superpowerFaction(r.Str("StationFaction")),
				FactionState:     r.Str("FactionState"),
				Economy:          r.Localised("StationEconomy"),
				Government:       r.Localised("StationGovernment"),
				DistanceFromStar: r.OptDecimal("DistFromStarLS"),
				Services:         r.Strings("StationServices"),
			})
		},
		"Undocked": func(r *record) []event.Event {
			return one(event.Undocked{Header: r.header(), Station: r.Str("StationName")})
		},
		"Location": func(r *record) []event.Event {
			system := r.Str("StarSystem")
			if system == trainingSystem {
				return nil
			}
			x, y, z := r.Coordinates("StarPos")
			return one(event.Location{
				Header:      r.header(),
				System:      system,
				X:           x,
				Y:           y,
				Z:           z,
				Body:        r.Str("Body"),
				BodyType:    r.Str("BodyType"),
				Docked:      r.Bool("Docked"),
				Station:     r.Str("StationName"),
				StationType: r.Str("StationType"),
				Allegiance:  r.Str("SystemAllegiance"),
				Faction:     superpowerFaction(r.Str("SystemFaction")),
				Economy:     r.Localised("SystemEconomy"),
				Government:  r.Localised("SystemGovernment"),
				Security:    r.Localised("SystemSecurity"),
				Population:  r.OptInt("Population"),
				Latitude:    r.OptDecimal("Latitude"),
				Longitude:   r.OptDecimal("Longitude"),
			})
		},
		"FSDJump": func(r *record) []event.Event {
			x, y, z := r.Coordinates("StarPos")
			return one(event.Jumped{
				Header:        r.header(),
				System:        r.Str("StarSystem"),
				X:             x,
				Y:             y,
				Z:             z,
				Distance:      r.Decimal("JumpDist"),
				FuelUsed:      r.Decimal("FuelUsed"),
				FuelRemaining: r.Decimal("FuelLevel"),
				Allegiance:    r.Str("SystemAllegiance"),
				Faction:       superpowerFaction(r.Str("SystemFaction")),
				FactionState:  r.Str("FactionState"),
				Economy:       r.Localised("SystemEconomy"),
				Government:    r.Localised("SystemGovernment"),
				Security:      r.Localised("SystemSecurity"),
				Population:    r.OptInt("Population"),
			})
		},
		"StartJump": func(r *record) []event.Event {
			return one(event.FSDEngaged{
				Header:       r.header(),
				Target:       r.Str("JumpType"),
				System:       r.Str("StarSystem"),
				StellarClass: r.Str("StarClass"),
			})
		},
		"SupercruiseEntry": func(r *record) []event.Event {
			return one(event.EnteredSupercruise{Header: r.header(), System: r.Str("StarSystem")})
		},
		"SupercruiseExit": func(r *record) []event.Event {
			return one(event.EnteredNormalSpace{
				Header:   r.header(),
				System:   r.Str("StarSystem"),
				Body:     r.Str("Body"),
				BodyType: r.Str("BodyType"),
			})
		},
		"Touchdown": func(r *record) []event.Event {
			return one(event.Touchdown{
				Header:           r.header(),
				Latitude:         r.OptDecimal("Latitude"),
				Longitude:        r.OptDecimal("Longitude"),
				PlayerControlled: r.BoolOr("PlayerControlled", true),
			})
		},
		"Liftoff": func(r *record) []event.Event {
			return one(event.Liftoff{
				Header:           r.header(),
				Latitude:         r.OptDecimal("Latitude"),
				Longitude:        r.OptDecimal("Longitude"),
				PlayerControlled: r.BoolOr("PlayerControlled", true),
			})
		},
		"DockingRequested": func(r *record) []event.Event {
			return one(event.DockingRequested{Header: r.header(), Station: r.Str("StationName")})
		},
		"DockingGranted": func(r *record) []event.Event {
			return one(event.DockingGranted{Header: r.header(), Station: r.Str("StationName"), LandingPad: r.Int("LandingPad")})
		},
		"DockingDenied": func(r *record) []event.Event {
			return one(event.DockingDenied{Header: r.header(), Station: r.Str("StationName"), Reason: r.Str("Reason")})
		},
		"DockingCancelled": func(r *record) []event.Event {
			return one(event.DockingCancelled{Header: r.header(), Station: r.Str("StationName")})
		},
		"DockingTimeout": func(r *record) []event.Event {
			return one(event.DockingTimedOut{Header: r.header(), Station: r.Str("StationName")})
		},
		"ApproachSettlement": func(r *record) []event.Event {
			return one(event.SettlementApproached{Header: r.header(), Name: r.Localised("Name")})
		},
		"USSDrop": func(r *record) []event.Event {
			return one(event.SignalSourceEntered{Header: r.header(), Source: r.Localised("USSType"), Threat: r.Int("USSThreat")})
		},
		"NavBeaconScan": func(r *record) []event.Event {
			return one(event.NavBeaconScanned{Header: r.header(), Bodies: r.Int("NumBodies")})
		},
		"JetConeBoost": func(r *record) []event.Event {
			return one(event.JetConeBoost{Header: r.header(), Boost: r.Decimal("BoostValue")})
		},
	}
}
