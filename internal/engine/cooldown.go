package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// CanStart reports whether kind may be started at now. When blocked it
// returns the time left. Only the start time counts; finishing or leaving
// an encounter early never shortens the wait.
func (e *Engine) CanStart(ctx context.Context, playerID string, kind game.Kind, now time.Time) (time.Duration, bool, error) {
	last, ok, err := e.cooldowns.LastStart(ctx, playerID, kind)
	if err != nil {
		return 0, false, fmt.Errorf("read cooldown: %w", err)
	}
	if !ok {
		return 0, true, nil
	}
	d := e.settings.Cooldowns[kind]
	if elapsed := now.Sub(last); elapsed < d {
		return d - elapsed, false, nil
	}
	return 0, true, nil
}

// Cooldowns lists the remaining wait per trackable kind. Kinds that can be
// started right away are omitted.
func (e *Engine) Cooldowns(ctx context.Context, playerID string, now time.Time) (map[game.Kind]time.Duration, error) {
	out := make(map[game.Kind]time.Duration)
	for _, k := range game.TrackableKinds {
		remaining, ok, err := e.CanStart(ctx, playerID, k, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[k] = remaining
		}
	}
	return out, nil
}
