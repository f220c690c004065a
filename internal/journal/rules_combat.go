package journal

import "github.com/journal-relay/backend/internal/event"

func optCombatRating(r *fields, key string) *event.Rating {
	rank := r.OptInt(key)
	if rank == nil {
		return nil
	}
	rating := event.CombatRating(int(*rank))
	return &rating
}

func bounty(r *record) []event.Event {
	ev := event.BountyAwarded{
		Header:        r.header(),
		Target:        r.Str("Target"),
		VictimFaction: superpowerFaction(r.Str("VictimFaction")),
	}
	if shared := r.OptInt("SharedWithOthers"); shared != nil {
		ev.Shared = *shared == 1
	}
	if r.Has("Reward") {
		ev.Reward = r.Int("Reward")
		ev.Rewards = []event.FactionReward{{Faction: superpowerFaction(r.Str("Faction")), Amount: ev.Reward}}
	} else {
		ev.Reward = r.Int("TotalReward")
		r.Each("Rewards", func(item *fields) {
			ev.Rewards = append(ev.Rewards, event.FactionReward{
				Faction: superpowerFaction(item.Str("Faction")),
				Amount:  item.Int("Reward"),
			})
		})
	}
	if ev.Reward == 0 {
		return nil
	}
	return one(ev)
}

func bond(capital bool) rule {
	return func(r *record) []event.Event {
		reward := r.Int("Reward")
		victim := superpowerFaction(r.Str("VictimFaction"))
		switch {
		case r.Has("AwardingFaction"):
			return one(event.BondAwarded{
				Header:          r.header(),
				AwardingFaction: superpowerFaction(r.Str("AwardingFaction")),
				VictimFaction:   victim,
				Reward:          reward,
				CapitalShip:     capital,
			})
		case r.Has("PayeeFaction"):
			return one(event.DataVoucherAwarded{
				Header:        r.header(),
				PayeeFaction:  superpowerFaction(r.Str("PayeeFaction")),
				VictimFaction: victim,
				Reward:        reward,
			})
		}
		return nil
	}
}

func combatRules() map[string]rule {
	return map[string]rule{
		"Bounty":          bounty,
		"CapShipBond":     bond(true),
		"FactionKillBond": bond(false),
		"DatalinkVoucher": bond(false),
		"CommitCrime": func(r *record) []event.Event {
			crime := r.Str("CrimeType")
			faction := superpowerFaction(r.Str("Faction"))
			victim := r.Str("Victim")
			if r.Has("Fine") {
				return one(event.FineIncurred{Header: r.header(), Crime: crime, Faction: faction, Victim: victim, Fine: r.Int("Fine")})
			}
			return one(event.BountyIncurred{Header: r.header(), Crime: crime, Faction: faction, Victim: victim, Bounty: r.Int("Bounty")})
		},
		"Interdicted": func(r *record) []event.Event {
			return one(event.ShipInterdicted{
				Header:      r.header(),
				Succeeded:   true,
				Submitted:   r.Bool("Submitted"),
				IsPlayer:    r.Bool("IsPlayer"),
				Interdictor: r.Localised("Interdictor"),
				Rating:      optCombatRating(r.fields, "CombatRank"),
				Faction:     superpowerFaction(r.Str("Faction")),
				Power:       r.Str("Power"),
			})
		},
		"EscapeInterdiction": func(r *record) []event.Event {
			return one(event.ShipInterdicted{
				Header:      r.header(),
				IsPlayer:    r.Bool("IsPlayer"),
				Interdictor: r.Localised("Interdictor"),
			})
		},
		"Interdiction": func(r *record) []event.Event {
			return one(event.ShipInterdiction{
				Header:    r.header(),
				Succeeded: r.Bool("Success"),
				IsPlayer:  r.Bool("IsPlayer"),
				Target:    r.Localised("Interdicted"),
				Rating:    optCombatRating(r.fields, "CombatRank"),
				Faction:   superpowerFaction(r.Str("Faction")),
				Power:     r.Str("Power"),
			})
		},
		"PVPKill": func(r *record) []event.Event {
			return one(event.Killed{Header: r.header(), Victim: r.Str("Victim"), Rating: optCombatRating(r.fields, "CombatRank")})
		},
		"Died": func(r *record) []event.Event {
			ev := event.Died{Header: r.header()}
			if r.Has("KillerName") {
				ev.Killers = append(ev.Killers, event.Killer{
					Name:   r.Localised("KillerName"),
					Ship:   r.Str("KillerShip"),
					Rating: event.CombatRatingByName(r.Str("KillerRank")),
				})
			}
			r.Each("Killers", func(item *fields) {
				ev.Killers = append(ev.Killers, event.Killer{
					Name:   item.Str("Name"),
					Ship:   item.Str("Ship"),
					Rating: event.CombatRatingByName(item.Str("Rank")),
				})
			})
			return one(ev)
		},
		"Resurrect": func(r *record) []event.Event {
			if r.Str("Option") != "rebuy" {
				return nil
			}
			return one(event.ShipRepurchased{Header: r.header(), Price: r.Int("Cost")})
		},
		"ShieldState": func(r *record) []event.Event {
			if r.Bool("ShieldsUp") {
				return one(event.ShieldsUp{Header: r.header()})
			}
			return one(event.ShieldsDown{Header: r.header()})
		},
		"HullDamage": func(r *record) []event.Event {
			piloted := r.OptBool("PlayerPilot")
			fighter := r.OptBool("Fighter")
			return one(event.HullDamaged{
				Header:     r.header(),
				Health:     sensibleHealth(r.Decimal("Health")),
				NPCFighter: fighter != nil && *fighter && piloted != nil && !*piloted,
			})
		},
		"HeatWarning": func(r *record) []event.Event {
			return one(event.HeatWarning{Header: r.header()})
		},
		"HeatDamage": func(r *record) []event.Event {
			return one(event.HeatDamage{Header: r.header()})
		},
		"CockpitBreached": func(r *record) []event.Event {
			return one(event.CockpitBreached{Header: r.header()})
		},
		"SelfDestruct": func(r *record) []event.Event {
			return one(event.SelfDestruct{Header: r.header()})
		},
		"SystemsShutdown": func(r *record) []event.Event {
			return one(event.ShipShutdown{Header: r.header()})
		},
	}
}
