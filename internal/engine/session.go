package engine

import (
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Session is the single active encounter of a player.
type Session struct {
	ID        string
	PlayerID  string
	Kind      game.Kind
	Opponents []game.Opponent
	Current   int
	// Suspended is set only while an ambush is being fought.
	Suspended    *Suspended
	StartedAt    time.Time
	LastActivity time.Time
}

// Suspended is the continuation of the encounter an ambush interrupted.
type Suspended struct {
	Kind             game.Kind
	Opponents        []game.Opponent
	Current          int
	PendingNarrative string
}

// Opponent returns the opponent being fought, or false when the index is
// out of range.
func (s *Session) Opponent() (*game.Opponent, bool) {
	if s.Current < 0 || s.Current >= len(s.Opponents) {
		return nil, false
	}
	return &s.Opponents[s.Current], true
}

// Remaining is the number of opponents not yet defeated, current included.
func (s *Session) Remaining() int {
	n := len(s.Opponents) - s.Current
	if n < 0 {
		return 0
	}
	return n
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Opponents = append([]game.Opponent(nil), s.Opponents...)
	if s.Suspended != nil {
		sus := *s.Suspended
		sus.Opponents = append([]game.Opponent(nil), s.Suspended.Opponents...)
		cp.Suspended = &sus
	}
	return &cp
}
