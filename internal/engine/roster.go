package engine

import (
	"fmt"

	"github.com/ericogr/siegebot/internal/game"
)

// generateRoster draws distinct opponents of kind at tier. The roster size
// is picked from the kind's range and capped at the pool size.
func (e *Engine) generateRoster(kind game.Kind, tier game.Tier) ([]game.Opponent, error) {
	pool := e.catalog.Pool(kind, tier)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s at %s", ErrNoOpponentsForTier, kind, tier)
	}
	bounds, ok := rosterSizes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	n := bounds[0]
	if span := bounds[1] - bounds[0]; span > 0 {
		n += e.rng.Intn(span + 1)
	}
	n = minInt(n, len(pool))

	order := e.rng.Perm(len(pool))
	roster := make([]game.Opponent, 0, n)
	for _, idx := range order[:n] {
		roster = append(roster, pool[idx])
	}
	return roster, nil
}
