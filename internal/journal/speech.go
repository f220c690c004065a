package journal

import (
	"strings"

	"github.com/journal-relay/backend/internal/event"
)

type speaker struct {
	prefixes []string
	contains string
	by       func(from string) string
}

func fixed(name string) func(string) string {
	return func(string) string { return name }
}

// speakers is ordered; the first match wins.
var speakers = []speaker{
	{prefixes: []string{"$AmbushedPilot_"}, by: fixed("Ambushed pilot")},
	{prefixes: []string{"$BountyHunter"}, by: fixed("Bounty hunter")},
	{prefixes: []string{"$CapShip", "$FEDCapShip"}, by: fixed("Capital ship")},
	{prefixes: []string{"$CargoHunter"}, by: fixed("Cargo hunter")},
	{prefixes: []string{"$Commuter"}, by: fixed("Civilian pilot")},
	{prefixes: []string{"$ConvoyExplorers"}, by: fixed("Exploration convoy")},
	{prefixes: []string{"$ConvoyWedding"}, by: fixed("Wedding convoy")},
	{prefixes: []string{"$CruiseLiner"}, by: fixed("Cruise liner")},
	{prefixes: []string{"$Escort"}, by: fixed("Escort")},
	{prefixes: []string{"$Hitman"}, by: fixed("Hitman")},
	{prefixes: []string{"$Messenger"}, by: fixed("Messenger")},
	{prefixes: []string{"$Military"}, by: fixed("Military")},
	{prefixes: []string{"$Miner"}, by: fixed("Miner")},
	{prefixes: []string{"$PassengerHunter"}, by: fixed("Passenger hunter")},
	{prefixes: []string{"$PassengerLiner"}, by: fixed("Passenger liner")},
	{prefixes: []string{"$Pirate"}, by: fixed("Pirate")},
	// Bounty hunters reuse police lines; only the sender tells them apart.
	{prefixes: []string{"$Police"}, by: func(from string) string {
		if strings.Contains(from, "Police") {
			return "Police"
		}
		return "Bounty hunter"
	}},
	{prefixes: []string{"$PowersAssassin", "$PowersPirate", "$PowersSecurity"}, by: fixed("Rival power's agent")},
	{prefixes: []string{"$Propagandist"}, by: fixed("Propagandist")},
	{prefixes: []string{"$Protester"}, by: fixed("Protester")},
	{prefixes: []string{"$Refugee"}, by: fixed("Refugee")},
	{prefixes: []string{"$Smuggler"}, by: fixed("Civilian pilot")},
	{prefixes: []string{"$StarshipOne"}, by: fixed("Starship One")},
	{contains: "_SearchandRescue_", by: fixed("Search and rescue")},
}

const defaultSpeaker = "NPC"

// classifySpeaker names the kind of NPC that sent message.
func classifySpeaker(from, message string) string {
	for _, s := range speakers {
		if s.contains != "" && strings.Contains(message, s.contains) {
			return s.by(from)
		}
		for _, p := range s.prefixes {
			if strings.HasPrefix(message, p) {
				return s.by(from)
			}
		}
	}
	return defaultSpeaker
}

var playerChannels = map[string]bool{
	"player":    true,
	"wing":      true,
	"friend":    true,
	"voicechat": true,
	"local":     true,
}

func receiveText(r *record) []event.Event {
	from := r.Str("From")
	message := r.Str("Message")
	channel := r.Str("Channel")

	if channel == "" || playerChannels[channel] {
		source := "Commander"
		switch channel {
		case "wing":
			source = "Wing mate"
		case "":
			source = "Crew mate"
			channel = "multicrew"
		}
		return one(event.MessageReceived{
			Header: r.header(), From: from, Source: source, Player: true, Channel: channel, Message: message,
		})
	}

	var source string
	switch {
	case strings.Contains(from, "npc_name_decorate"):
		source = classifySpeaker(from, message)
		from = strings.ReplaceAll(strings.ReplaceAll(from, "$npc_name_decorate:#name=", ""), ";", "")
	case strings.Contains(from, "ShipName_"):
		source = classifySpeaker(from, message)
		from = r.Str("From_Localised")
	case strings.HasPrefix(message, "$STATION_") || strings.Contains(message, "$Docking"):
		source = "Station"
	default:
		source = defaultSpeaker
	}

	events := []event.Event{event.MessageReceived{
		Header: r.header(), From: from, Source: source, Channel: channel, Message: r.Str("Message_Localised"),
	}}

	switch {
	case message == "$STATION_NoFireZone_entered;":
		events = append(events, event.NoFireZoneEntered{Header: r.header()})
	case message == "$STATION_NoFireZone_entered_deployed;":
		events = append(events, event.NoFireZoneEntered{Header: r.header(), WeaponsDeployed: true})
	case message == "$STATION_NoFireZone_exited;":
		events = append(events, event.NoFireZoneExited{Header: r.header()})
	case strings.Contains(message, "_StartInterdiction"):
		events = append(events, event.NPCInterdictionCommenced{Header: r.header(), By: classifySpeaker(from, message)})
	case strings.Contains(message, "_Attack"), strings.Contains(message, "_OnAttackStart"),
		strings.Contains(message, "AttackRun"), strings.Contains(message, "OnDeclarePiracyAttack"):
		events = append(events, event.NPCAttackCommenced{Header: r.header(), By: classifySpeaker(from, message)})
	case strings.Contains(message, "_OnStartScanCargo"):
		events = append(events, event.NPCCargoScanCommenced{Header: r.header(), By: classifySpeaker(from, message)})
	}
	return events
}

func commsRules() map[string]rule {
	return map[string]rule{
		"ReceiveText": receiveText,
		"SendText": func(r *record) []event.Event {
			return one(event.MessageSent{Header: r.header(), To: r.Str("To"), Message: r.Str("Message")})
		},
	}
}
