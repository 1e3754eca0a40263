package engine

import (
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// IdleSessions lists players whose session has been quiet since cutoff.
func (e *Engine) IdleSessions(cutoff time.Time) []string {
	return e.sessions.IdleSince(cutoff)
}

// ExpireIfIdle drops the player's session when it is still idle at cutoff.
// Cooldowns are not refunded.
func (e *Engine) ExpireIfIdle(playerID string, cutoff time.Time) (game.Kind, bool) {
	s, ok := e.sessions.Get(playerID)
	if !ok || !s.LastActivity.Before(cutoff) {
		return "", false
	}
	e.sessions.Delete(playerID)
	e.actions.Clear(playerID)
	return s.Kind, true
}
