package session

import (
	"testing"
)

func privacyFixture() State {
	home := &StarSystem{Name: "Sol", HasCoordinates: true}
	d := 4.38
	return State{
		HomeSystem:       home,
		HomeStation:      home.stationOrCreate("Abraham Lincoln"),
		DistanceFromHome: &d,
		Commander: Commander{
			Name:    "Jameson",
			Credits: 1000,
			Loan:    50,
			Friends: []Friend{{Name: "Bob", Status: "Online"}},
		},
	}
}

func TestPrivacyFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter PrivacyFilter
		check  func(t *testing.T, s State)
	}{
		{
			name:   "empty filter changes nothing",
			filter: PrivacyFilter{},
			check: func(t *testing.T, s State) {
				if s.Commander.Name != "Jameson" || s.Commander.Credits != 1000 || len(s.Commander.Friends) != 1 || s.HomeStation == nil {
					t.Errorf("state altered: %+v", s)
				}
			},
		},
		{
			name:   "mask commander",
			filter: PrivacyFilter{MaskCommander: true},
			check: func(t *testing.T, s State) {
				if s.Commander.Name == "Jameson" {
					t.Error("commander name not masked")
				}
				if len(s.Commander.Name) != 12 {
					t.Errorf("masked name %q, want 12 hex chars", s.Commander.Name)
				}
			},
		},
		{
			name:   "mask credits",
			filter: PrivacyFilter{MaskCredits: true},
			check: func(t *testing.T, s State) {
				if s.Commander.Credits != 0 || s.Commander.Loan != 0 {
					t.Errorf("credits = %d, loan = %d", s.Commander.Credits, s.Commander.Loan)
				}
			},
		},
		{
			name:   "hide friends",
			filter: PrivacyFilter{HideFriends: true},
			check: func(t *testing.T, s State) {
				if s.Commander.Friends != nil {
					t.Errorf("friends = %+v", s.Commander.Friends)
				}
			},
		},
		{
			name:   "hide home",
			filter: PrivacyFilter{HideHome: true},
			check: func(t *testing.T, s State) {
				if s.HomeSystem != nil || s.HomeStation != nil || s.DistanceFromHome != nil {
					t.Error("home details still present")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := privacyFixture()
			got := tt.filter.Apply(orig)
			tt.check(t, got)
			if orig.Commander.Name != "Jameson" || orig.HomeSystem == nil || len(orig.Commander.Friends) != 1 {
				t.Error("Apply modified the original")
			}
		})
	}
}

func TestPrivacyFilter_MaskIsStable(t *testing.T) {
	f := PrivacyFilter{MaskCommander: true}
	a := f.Apply(State{Commander: Commander{Name: "Jameson"}})
	b := f.Apply(State{Commander: Commander{Name: "Jameson"}})
	if a.Commander.Name != b.Commander.Name {
		t.Errorf("mask not stable: %q vs %q", a.Commander.Name, b.Commander.Name)
	}
	empty := f.Apply(State{})
	if empty.Commander.Name != "" {
		t.Errorf("empty name masked to %q", empty.Commander.Name)
	}
}

func TestPrivacyFilter_IsNoop(t *testing.T) {
	if !(&PrivacyFilter{}).IsNoop() {
		t.Error("zero filter should be a no-op")
	}
	if (&PrivacyFilter{HideHome: true}).IsNoop() {
		t.Error("HideHome filter reported as no-op")
	}
}
