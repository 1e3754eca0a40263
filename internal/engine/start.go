package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/siegebot/internal/game"
)

// Start opens a new encounter of kind for p. The cooldown is checked
// before exclusivity, and recorded only once the session exists.
func (e *Engine) Start(ctx context.Context, p *game.Profile, kind game.Kind, now time.Time) (Result, error) {
	if !kind.Trackable() {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	remaining, ok, err := e.CanStart(ctx, p.PlayerID, kind, now)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, &CooldownError{Kind: kind, Remaining: remaining}
	}
	if cur, exists := e.sessions.Get(p.PlayerID); exists {
		return Result{}, &AlreadyInEncounterError{Kind: cur.Kind}
	}

	roster, err := e.generateRoster(kind, e.catalog.TierForRank(p.Rank))
	if err != nil {
		return Result{}, err
	}
	if err := e.cooldowns.RecordStart(ctx, p.PlayerID, kind, now); err != nil {
		return Result{}, fmt.Errorf("record cooldown: %w", err)
	}
	e.actions.Clear(p.PlayerID)

	// Health is restored for every encounter; shield carries over.
	p.Health = game.MaxHealth

	s := &Session{
		ID:           uuid.NewString(),
		PlayerID:     p.PlayerID,
		Kind:         kind,
		Opponents:    roster,
		StartedAt:    now,
		LastActivity: now,
	}
	ec := e.newContext(p, s, now)
	ec.add(e.catalog.Stage(kind, 0))
	ec.pause()
	ec.introduce()
	ec.addf("Attack with /wl-attack <weapon>. Strike every %s to %s.",
		e.settings.MinAttackInterval, e.settings.MaxAttackInterval)
	return ec.result(OutcomeStarted, kind), nil
}

// Exit abandons the active session. The cooldown already recorded stays.
func (e *Engine) Exit(playerID string) (Result, error) {
	s, ok := e.sessions.Get(playerID)
	if !ok {
		return Result{}, ErrNoActiveEncounter
	}
	e.sessions.Delete(playerID)
	return Result{
		Outcome:   OutcomeExited,
		Kind:      s.Kind,
		SessionID: s.ID,
		Lines:     []Line{{Text: fmt.Sprintf("You abandoned the %s. Its cooldown still applies.", s.Kind.Label())}},
	}, nil
}
