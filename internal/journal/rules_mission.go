package journal

import (
	"time"

	"github.com/journal-relay/backend/internal/event"
)

func optTime(f *fields, key string) *time.Time {
	s := f.Str(key)
	if s == "" {
		return nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	at = at.UTC()
	return &at
}

func missionAccepted(r *record) []event.Event {
	amount := r.OptInt("Count")
	if amount == nil {
		amount = r.OptInt("KillCount")
	}
	if amount == nil {
		amount = r.OptInt("PassengerCount")
	}
	return one(event.MissionAccepted{
		Header:             r.header(),
		MissionID:          r.OptInt("MissionID"),
		Name:               r.Str("Name"),
		Faction:            superpowerFaction(r.Str("Faction")),
		DestinationSystem:  r.Str("DestinationSystem"),
		DestinationStation: r.Str("DestinationStation"),
		Commodity:          r.Localised("Commodity"),
		Amount:             amount,
		PassengerType:      r.Str("PassengerType"),
		PassengersWanted:   r.OptBool("PassengerWanted"),
		Target:             r.Localised("Target"),
		TargetType:         r.Localised("TargetType"),
		TargetFaction:      superpowerFaction(r.Str("TargetFaction")),
		Expiry:             optTime(r.fields, "Expiry"),
		Influence:          r.Str("Influence"),
		Reputation:         r.Str("Reputation"),
	})
}

func missionCompleted(r *record) []event.Event {
	ev := event.MissionCompleted{
		Header:    r.header(),
		MissionID: r.OptInt("MissionID"),
		Name:      r.Str("Name"),
		Faction:   superpowerFaction(r.Str("Faction")),
		Commodity: r.Localised("Commodity"),
		Amount:    r.OptInt("Count"),
		Reward:    r.Int("Reward"),
	}
	if donation := r.OptInt("Donation"); donation != nil {
		ev.Donation = *donation
	}
	r.Each("CommodityReward", func(item *fields) {
		ev.CommodityRewards = append(ev.CommodityRewards, event.CargoItem{
			Commodity: item.Localised("Name"),
			Amount:    item.Int("Count"),
		})
	})
	return one(ev)
}

// engineerCraft accepts ingredients either as a name to count object or as
// a list of name and count pairs.
func engineerCraft(r *record) []event.Event {
	ev := event.ModificationCrafted{
		Header:    r.header(),
		Engineer:  r.Str("Engineer"),
		Blueprint: r.Str("Blueprint"),
		Level:     r.Int("Level"),
	}
	add := func(name string, n int64) {
		ev.Materials = append(ev.Materials, event.MaterialAmount{Material: name, Amount: n})
	}
	if r.get("Ingredients").IsArray() {
		r.Each("Ingredients", func(item *fields) {
			add(item.Localised("Name"), item.Int("Count"))
		})
	} else {
		r.IntMap("Ingredients", add)
	}
	return one(ev)
}

func missionRules() map[string]rule {
	return map[string]rule{
		"MissionAccepted":  missionAccepted,
		"MissionCompleted": missionCompleted,
		"MissionAbandoned": func(r *record) []event.Event {
			return one(event.MissionAbandoned{Header: r.header(), MissionID: r.Int("MissionID"), Name: r.Str("Name")})
		},
		"MissionFailed": func(r *record) []event.Event {
			return one(event.MissionFailed{Header: r.header(), MissionID: r.Int("MissionID"), Name: r.Str("Name")})
		},
		"MissionRedirected": func(r *record) []event.Event {
			return one(event.MissionRedirected{
				Header:                r.header(),
				MissionID:             r.Int("MissionID"),
				Name:                  r.Str("MissionName"),
				NewDestinationStation: r.Str("NewDestinationStation"),
				OldDestinationStation: r.Str("OldDestinationStation"),
				NewDestinationSystem:  r.Str("NewDestinationSystem"),
				OldDestinationSystem:  r.Str("OldDestinationSystem"),
			})
		},
		"CommunityGoalJoin": func(r *record) []event.Event {
			return one(event.MissionAccepted{
				Header:            r.header(),
				Name:              r.Str("Name"),
				DestinationSystem: r.Str("System"),
				Communal:          true,
			})
		},
		"CommunityGoalReward": func(r *record) []event.Event {
			return one(event.MissionCompleted{
				Header:   r.header(),
				Name:     r.Str("Name"),
				Reward:   r.Int("Reward"),
				Communal: true,
			})
		},
		"EngineerCraft": engineerCraft,
		"EngineerApply": func(r *record) []event.Event {
			return one(event.ModificationApplied{
				Header:    r.header(),
				Engineer:  r.Str("Engineer"),
				Blueprint: r.Str("Blueprint"),
				Level:     r.Int("Level"),
			})
		},
		"EngineerProgress": func(r *record) []event.Event {
			rank := r.OptInt("Rank")
			if rank == nil {
				return nil
			}
			return one(event.EngineerProgressed{Header: r.header(), Engineer: r.Str("Engineer"), Rank: *rank})
		},
	}
}
