// Package profile reconciles session state with the remote commander
// profile after the commander docks.
package profile

import (
	"context"
	"errors"

	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/session"
)

// ErrNotReady is returned by sources that cannot serve requests yet.
var ErrNotReady = errors.New("profile source not ready")

// Source is the remote profile service. Implementations must be safe for
// concurrent use.
type Source interface {
	// Ready reports whether the source is authenticated and usable.
	Ready() bool
	FetchProfile(ctx context.Context) (Snapshot, error)
	// FetchStation returns the station the profile says the commander is
	// docked at in system.
	FetchStation(ctx context.Context, system string) (StationSnapshot, error)
}

// Ranks holds commander ratings as reported by the profile. Nil means not
// reported.
type Ranks struct {
	Combat      *int `json:"combat,omitempty"`
	Trade       *int `json:"trade,omitempty"`
	Exploration *int `json:"exploration,omitempty"`
	CQC         *int `json:"cqc,omitempty"`
	Empire      *int `json:"empire,omitempty"`
	Federation  *int `json:"federation,omitempty"`
}

// Snapshot is the commander half of a profile response.
type Snapshot struct {
	Commander string `json:"commander"`
	Credits   int64  `json:"credits"`
	Loan      int64  `json:"loan"`
	Ranks     Ranks  `json:"ranks"`
}

func (s Snapshot) sessionProfile() session.Profile {
	return session.Profile{
		Commander:   s.Commander,
		Credits:     s.Credits,
		Loan:        s.Loan,
		Combat:      rated(s.Ranks.Combat, event.CombatRating),
		Trade:       rated(s.Ranks.Trade, event.TradeRating),
		Exploration: rated(s.Ranks.Exploration, event.ExplorationRating),
		CQC:         rated(s.Ranks.CQC, event.CQCRating),
		Empire:      rated(s.Ranks.Empire, event.EmpireRating),
		Federation:  rated(s.Ranks.Federation, event.FederationRating),
	}
}

func rated(rank *int, table func(int) event.Rating) *event.Rating {
	if rank == nil {
		return nil
	}
	r := table(*rank)
	return &r
}

// StationSnapshot is the station half of a profile response.
type StationSnapshot struct {
	Name            string              `json:"name"`
	System          string              `json:"system"`
	Economies       []string            `json:"economies,omitempty"`
	Commodities     []session.Commodity `json:"commodities,omitempty"`
	ProhibitedGoods []string            `json:"prohibited,omitempty"`
	Outfitting      []string            `json:"outfitting,omitempty"`
	Shipyard        []string            `json:"shipyard,omitempty"`
}

func (s StationSnapshot) market() session.MarketData {
	return session.MarketData{
		Economies:       s.Economies,
		Commodities:     s.Commodities,
		ProhibitedGoods: s.ProhibitedGoods,
		Outfitting:      s.Outfitting,
		Shipyard:        s.Shipyard,
	}
}

// Unavailable is a source that is never ready, for running without
// profile credentials.
type Unavailable struct{}

func (Unavailable) Ready() bool { return false }

func (Unavailable) FetchProfile(context.Context) (Snapshot, error) {
	return Snapshot{}, ErrNotReady
}

func (Unavailable) FetchStation(context.Context, string) (StationSnapshot, error) {
	return StationSnapshot{}, ErrNotReady
}
