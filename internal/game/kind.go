package game

import "strings"

// Kind identifies the type of an encounter session.
type Kind string

const (
	KindSiege         Kind = "siege"
	KindRaid          Kind = "raid"
	KindFortify       Kind = "fortify"
	KindAssassination Kind = "assassination"
	// KindAmbush is never started by a player. It only replaces a session
	// whose final opponent was just cleared.
	KindAmbush Kind = "ambush"
)

// TrackableKinds lists the kinds a player can start and that own a
// completion counter on the profile.
var TrackableKinds = []Kind{KindSiege, KindRaid, KindFortify, KindAssassination}

// ParseKind maps user or config text to a Kind. It accepts a few aliases
// used by the command surface ("fortification", "assassinate").
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "siege":
		return KindSiege, true
	case "raid":
		return KindRaid, true
	case "fortify", "fortification", "fortifications":
		return KindFortify, true
	case "assassination", "assassinate":
		return KindAssassination, true
	case "ambush":
		return KindAmbush, true
	}
	return "", false
}

// Trackable reports whether k can be started and counted.
func (k Kind) Trackable() bool {
	switch k {
	case KindSiege, KindRaid, KindFortify, KindAssassination:
		return true
	}
	return false
}

// Label is the human-readable name used in replies.
func (k Kind) Label() string {
	switch k {
	case KindFortify:
		return "fortification defense"
	case "":
		return "encounter"
	}
	return string(k)
}

// Tier is a strength bracket shared by ranks and opponents.
type Tier string

const (
	TierVeryLow  Tier = "very-low"
	TierLow      Tier = "low"
	TierMid      Tier = "mid"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very-high"
)

// Tiers is the ordered list of all tiers, weakest first.
var Tiers = []Tier{TierVeryLow, TierLow, TierMid, TierHigh, TierVeryHigh}

// ParseTier returns the tier named by s. Unknown names map to TierVeryLow
// and ok=false so config loaders can reject them while runtime lookups
// still degrade to the weakest bracket.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tiers {
		if t == known {
			return t, true
		}
	}
	return TierVeryLow, false
}

// Elite reports whether the tier is high or very-high.
func (t Tier) Elite() bool {
	return t == TierHigh || t == TierVeryHigh
}
