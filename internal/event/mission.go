package event

import "time"

// MissionAccepted also represents joining a community goal, in which case
// Communal is set and MissionID is nil.
type MissionAccepted struct {
	Header
	MissionID          *int64     `json:"missionId,omitempty"`
	Name               string     `json:"name"`
	Faction            string     `json:"faction,omitempty"`
	DestinationSystem  string     `json:"destinationSystem,omitempty"`
	DestinationStation string     `json:"destinationStation,omitempty"`
	Commodity          string     `json:"commodity,omitempty"`
	Amount             *int64     `json:"amount,omitempty"`
	PassengerType      string     `json:"passengerType,omitempty"`
	PassengersWanted   *bool      `json:"passengersWanted,omitempty"`
	Target             string     `json:"target,omitempty"`
	TargetType         string     `json:"targetType,omitempty"`
	TargetFaction      string     `json:"targetFaction,omitempty"`
	Communal           bool       `json:"communal"`
	Expiry             *time.Time `json:"expiry,omitempty"`
	Influence          string     `json:"influence,omitempty"`
	Reputation         string     `json:"reputation,omitempty"`
}

func (MissionAccepted) Kind() Kind { return KindMissionAccepted }

type MissionCompleted struct {
	Header
	MissionID        *int64      `json:"missionId,omitempty"`
	Name             string      `json:"name"`
	Faction          string      `json:"faction,omitempty"`
	Commodity        string      `json:"commodity,omitempty"`
	Amount           *int64      `json:"amount,omitempty"`
	Communal         bool        `json:"communal"`
	Reward           int64       `json:"reward"`
	CommodityRewards []CargoItem `json:"commodityRewards,omitempty"`
	Donation         int64       `json:"donation"`
}

func (MissionCompleted) Kind() Kind { return KindMissionCompleted }

type MissionAbandoned struct {
	Header
	MissionID int64  `json:"missionId"`
	Name      string `json:"name"`
}

func (MissionAbandoned) Kind() Kind { return KindMissionAbandoned }

type MissionFailed struct {
	Header
	MissionID int64  `json:"missionId"`
	Name      string `json:"name"`
}

func (MissionFailed) Kind() Kind { return KindMissionFailed }

type MissionRedirected struct {
	Header
	MissionID             int64  `json:"missionId"`
	Name                  string `json:"name"`
	NewDestinationStation string `json:"newDestinationStation,omitempty"`
	OldDestinationStation string `json:"oldDestinationStation,omitempty"`
	NewDestinationSystem  string `json:"newDestinationSystem,omitempty"`
	OldDestinationSystem  string `json:"oldDestinationSystem,omitempty"`
}

func (MissionRedirected) Kind() Kind { return KindMissionRedirected }

type ModificationCrafted struct {
	Header
	Engineer    string           `json:"engineer"`
	Blueprint   string           `json:"blueprint"`
	Level       int64            `json:"level"`
	Materials   []MaterialAmount `json:"materials,omitempty"`
	Commodities []CargoItem      `json:"commodities,omitempty"`
}

func (ModificationCrafted) Kind() Kind { return KindModificationCrafted }

type ModificationApplied struct {
	Header
	Engineer  string `json:"engineer"`
	Blueprint string `json:"blueprint"`
	Level     int64  `json:"level"`
}

func (ModificationApplied) Kind() Kind { return KindModificationApplied }

type EngineerProgressed struct {
	Header
	Engineer string `json:"engineer"`
	Rank     int64  `json:"rank"`
}

func (EngineerProgressed) Kind() Kind { return KindEngineerProgressed }
