package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Checkpoint is the engine state of one player captured before a call, so
// the call can be undone when its profile changes fail to persist.
type Checkpoint struct {
	playerID  string
	session   *Session
	action    time.Time
	hasAction bool
	starts    map[game.Kind]startMark
}

type startMark struct {
	at time.Time
	ok bool
}

// Checkpoint captures the player's session and attack clock, plus the
// cooldown starts of kinds.
func (e *Engine) Checkpoint(ctx context.Context, playerID string, kinds ...game.Kind) (*Checkpoint, error) {
	cp := &Checkpoint{playerID: playerID, starts: make(map[game.Kind]startMark, len(kinds))}
	if s, ok := e.sessions.Get(playerID); ok {
		cp.session = s
	}
	cp.action, cp.hasAction = e.actions.Last(playerID)
	for _, k := range kinds {
		at, ok, err := e.cooldowns.LastStart(ctx, playerID, k)
		if err != nil {
			return nil, fmt.Errorf("read cooldown: %w", err)
		}
		cp.starts[k] = startMark{at: at, ok: ok}
	}
	return cp, nil
}

// Rollback puts back everything cp captured. Callers must hold the same
// per-player serialization they held around the undone call.
func (e *Engine) Rollback(ctx context.Context, cp *Checkpoint) error {
	if cp.session != nil {
		e.sessions.Put(cp.session)
	} else {
		e.sessions.Delete(cp.playerID)
	}
	if cp.hasAction {
		e.actions.Record(cp.playerID, cp.action)
	} else {
		e.actions.Clear(cp.playerID)
	}
	for k, m := range cp.starts {
		var err error
		if m.ok {
			err = e.cooldowns.RecordStart(ctx, cp.playerID, k, m.at)
		} else {
			err = e.cooldowns.ClearStart(ctx, cp.playerID, k)
		}
		if err != nil {
			return fmt.Errorf("restore %s cooldown: %w", k, err)
		}
	}
	return nil
}
