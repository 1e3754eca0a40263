package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// encounterContext accumulates the reply lines of one engine call and
// decides at the end whether the session is saved or dropped.
type encounterContext struct {
	e      *Engine
	p      *game.Profile
	s      *Session
	now    time.Time
	lines  []Line
	closed bool
}

func (e *Engine) newContext(p *game.Profile, s *Session, now time.Time) *encounterContext {
	return &encounterContext{e: e, p: p, s: s, now: now, lines: make([]Line, 0, 8)}
}

func (ec *encounterContext) add(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	ec.lines = append(ec.lines, Line{Text: msg})
}

func (ec *encounterContext) addf(format string, args ...any) { ec.add(fmt.Sprintf(format, args...)) }

// pause marks the latest line as one the transport should linger on.
func (ec *encounterContext) pause() {
	if n := len(ec.lines); n > 0 {
		ec.lines[n-1].PauseAfter = ec.e.settings.PacingDelay
	}
}

func (ec *encounterContext) introduce() {
	opp, ok := ec.s.Opponent()
	if !ok {
		return
	}
	ec.addf("Opponent %d of %d: %s (%s) with %d HP, %d shield, %d damage.",
		ec.s.Current+1, len(ec.s.Opponents), opp.Name, opp.Tier, opp.HitPoints, opp.Shield, opp.Damage)
}

func (ec *encounterContext) status() {
	ec.addf("Health: %d | Shield: %d", ec.p.Health, ec.p.Shield)
}

// close ends the session. commit then deletes it instead of saving it.
func (ec *encounterContext) close() { ec.closed = true }

func (ec *encounterContext) commit() {
	if ec.closed {
		ec.e.sessions.Delete(ec.p.PlayerID)
		return
	}
	ec.s.LastActivity = ec.now
	ec.e.sessions.Put(ec.s)
}

// result commits the session and reports outcome for kind.
func (ec *encounterContext) result(outcome Outcome, kind game.Kind) Result {
	ec.commit()
	return Result{Outcome: outcome, Kind: kind, SessionID: ec.s.ID, Lines: ec.lines}
}
