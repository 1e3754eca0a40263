package engine

import (
	"strings"

	"github.com/ericogr/siegebot/internal/game"
)

// victory grants the win rewards for kind and ends the session.
func (ec *encounterContext) victory(kind game.Kind, narrative string) Result {
	st := ec.e.settings
	ec.p.Experience += st.VictoryExperience
	ec.p.Coffers += st.VictoryCoffers
	ec.p.IncrementCompleted(kind)

	ec.add(narrative)
	ec.addf("Victory! +%d experience, +%d coffers.", st.VictoryExperience, st.VictoryCoffers)
	if rank, ok := ec.e.promote(ec.p); ok {
		ec.addf("You have been promoted to %s.", rank)
	}
	ec.close()
	return ec.result(OutcomeVictory, kind)
}

// defeat applies the counter-attack death penalty. An ambush loss forfeits
// the suspended encounter with it.
func (ec *encounterContext) defeat() Result {
	st := ec.e.settings
	ec.p.Health = 0
	ec.p.Experience = maxInt(0, ec.p.Experience-st.DefeatExperience)
	ec.p.Coffers = maxInt(0, ec.p.Coffers-st.DefeatCoffers)

	if ec.s.Kind == game.KindAmbush {
		ec.add(ec.e.catalog.Ambush.Defeat)
	} else {
		ec.add(ec.e.catalog.Narratives[ec.s.Kind].Defeat)
	}
	ec.addf("Defeat. -%d experience, -%d coffers.", st.DefeatExperience, st.DefeatCoffers)
	ec.close()
	return ec.result(OutcomeDefeat, ec.s.Kind)
}

// promote moves p to the highest rank its experience reaches. Ranks are
// never lowered.
func (e *Engine) promote(p *game.Profile) (string, bool) {
	next, ok := e.catalog.RankForExperience(p.Experience)
	if !ok || strings.EqualFold(next.Name, p.Rank) {
		return "", false
	}
	for _, r := range e.catalog.Ranks {
		if strings.EqualFold(r.Name, p.Rank) && r.MinExperience >= next.MinExperience {
			return "", false
		}
	}
	p.Rank = next.Name
	return next.Name, true
}
