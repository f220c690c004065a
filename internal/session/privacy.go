package session

import (
	"crypto/sha256"
	"fmt"
)

// PrivacyFilter masks personal details in state before it leaves the
// process. The zero value is a no-op filter.
type PrivacyFilter struct {
	MaskCommander bool
	MaskCredits   bool
	HideFriends   bool
	HideHome      bool
}

// Apply returns a masked copy of s. The original is never modified.
func (f *PrivacyFilter) Apply(s State) State {
	masked := s.Clone()

	if f.MaskCommander && masked.Commander.Name != "" {
		masked.Commander.Name = shortHash(masked.Commander.Name)
	}

	if f.MaskCredits {
		masked.Commander.Credits = 0
		masked.Commander.Loan = 0
	}

	if f.HideFriends {
		masked.Commander.Friends = nil
	}

	if f.HideHome {
		masked.HomeSystem = nil
		masked.HomeStation = nil
		masked.DistanceFromHome = nil
	}

	return masked
}

// IsNoop reports whether the filter does nothing.
func (f *PrivacyFilter) IsNoop() bool {
	return !f.MaskCommander && !f.MaskCredits && !f.HideFriends && !f.HideHome
}

// shortHash returns a truncated SHA-256 hex digest for an opaque identifier.
func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h[:6])
}
