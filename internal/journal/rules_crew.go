package journal

import "github.com/journal-relay/backend/internal/event"

func crewRules() map[string]rule {
	return map[string]rule{
		"CrewHire": func(r *record) []event.Event {
			return one(event.CrewHired{
				Header:  r.header(),
				Name:    r.Str("Name"),
				Faction: superpowerFaction(r.Str("Faction")),
				Price:   r.Int("Cost"),
				Rating:  event.CombatRating(int(r.Int("CombatRank"))),
			})
		},
		"CrewFire": func(r *record) []event.Event {
			return one(event.CrewFired{Header: r.header(), Name: r.Str("Name")})
		},
		"CrewAssign": func(r *record) []event.Event {
			return one(event.CrewAssigned{Header: r.header(), Name: r.Str("Name"), Role: crewRole(r.Str("Role"))})
		},
		"JoinACrew": func(r *record) []event.Event {
			return one(event.CrewJoined{Header: r.header(), Captain: cleanCommanderName(r.Str("Captain"))})
		},
		"QuitACrew": func(r *record) []event.Event {
			return one(event.CrewLeft{Header: r.header(), Captain: cleanCommanderName(r.Str("Captain"))})
		},
		"ChangeCrewRole": func(r *record) []event.Event {
			return one(event.CrewRoleChanged{Header: r.header(), Role: crewRole(r.Str("Role"))})
		},
		"CrewMemberJoins": func(r *record) []event.Event {
			return one(event.CrewMemberJoined{Header: r.header(), Member: cleanCommanderName(r.Str("Crew"))})
		},
		"CrewMemberQuits": func(r *record) []event.Event {
			return one(event.CrewMemberLeft{Header: r.header(), Member: cleanCommanderName(r.Str("Crew"))})
		},
		"CrewMemberRoleChange": func(r *record) []event.Event {
			return one(event.CrewMemberRoleChanged{
				Header: r.header(),
				Member: cleanCommanderName(r.Str("Crew")),
				Role:   crewRole(r.Str("Role")),
			})
		},
		"KickCrewMember": func(r *record) []event.Event {
			return one(event.CrewMemberRemoved{Header: r.header(), Member: cleanCommanderName(r.Str("Crew"))})
		},
		"CrewLaunchFighter": func(r *record) []event.Event {
			return one(event.CrewMemberLaunched{Header: r.header(), Member: cleanCommanderName(r.Str("Crew"))})
		},
	}
}
