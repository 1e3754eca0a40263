package engine

import (
	"github.com/ericogr/siegebot/internal/game"
)

// ambushChance is the trigger probability for a player of tier t.
func (e *Engine) ambushChance(t game.Tier) float64 {
	if t.Elite() {
		return e.settings.AmbushEliteChance
	}
	return e.settings.AmbushBaseChance
}

// pickAmbusher draws an elite siege opponent, falling back to any siege
// opponent. It returns false when the catalog has no siege entries.
func (e *Engine) pickAmbusher() (game.Opponent, bool) {
	var elite []game.Opponent
	all := e.catalog.Opponents[game.KindSiege]
	for _, o := range all {
		if o.Tier.Elite() {
			elite = append(elite, o)
		}
	}
	pool := elite
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return game.Opponent{}, false
	}
	return pool[e.rng.Intn(len(pool))], true
}

// ambush rolls for an interrupt and, when it fires, parks the cleared
// session and replaces it with a one-opponent ambush. victory is the
// narrative to show once the interrupted encounter settles.
func (ec *encounterContext) ambush(victory string) bool {
	tier := ec.e.catalog.TierForRank(ec.p.Rank)
	if ec.e.rng.Float64() >= ec.e.ambushChance(tier) {
		return false
	}
	ambusher, ok := ec.e.pickAmbusher()
	if !ok {
		return false
	}
	prev := ec.s
	ec.s = &Session{
		ID:        prev.ID,
		PlayerID:  prev.PlayerID,
		Kind:      game.KindAmbush,
		Opponents: []game.Opponent{ambusher},
		Suspended: &Suspended{
			Kind:             prev.Kind,
			Opponents:        prev.Opponents,
			Current:          prev.Current,
			PendingNarrative: victory,
		},
		StartedAt: prev.StartedAt,
	}
	ec.add(ec.e.catalog.Ambush.Intro)
	ec.pause()
	ec.introduce()
	return true
}

// resume restores the encounter an ambush interrupted. Ambushes are never
// rewarded on their own; the interrupted kind settles.
func (ec *encounterContext) resume() Result {
	ec.add(ec.e.catalog.Ambush.Victory)
	sus := ec.s.Suspended
	if sus == nil {
		ec.close()
		return ec.result(OutcomeVictory, game.KindAmbush)
	}
	ec.s = &Session{
		ID:        ec.s.ID,
		PlayerID:  ec.s.PlayerID,
		Kind:      sus.Kind,
		Opponents: sus.Opponents,
		Current:   sus.Current,
		StartedAt: ec.s.StartedAt,
	}
	if ec.s.Current >= len(ec.s.Opponents) {
		return ec.victory(sus.Kind, sus.PendingNarrative)
	}
	ec.add(ec.e.catalog.Stage(ec.s.Kind, ec.s.Current))
	ec.introduce()
	return ec.result(OutcomeResumed, ec.s.Kind)
}
