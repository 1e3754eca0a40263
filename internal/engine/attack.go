package engine

import (
	"strings"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Attack resolves one strike of the named weapon against the current
// opponent. Precondition failures are returned as errors and leave the
// session as it was, except for a corrupt index which drops the session.
func (e *Engine) Attack(p *game.Profile, weapon string, now time.Time) (Result, error) {
	s, ok := e.sessions.Get(p.PlayerID)
	if !ok {
		return Result{}, ErrNoActiveEncounter
	}
	if _, ok := s.Opponent(); !ok {
		e.sessions.Delete(p.PlayerID)
		return Result{}, ErrNoOpponents
	}
	if p.Inventory.Empty() {
		return Result{}, ErrNoWeapon
	}
	weapon = strings.TrimSpace(weapon)
	if weapon == "" {
		return Result{}, ErrChooseWeapon
	}
	held, ok := p.Inventory.Lookup(weapon)
	if !ok {
		return Result{}, &ItemError{Err: ErrItemNotOwned, Item: weapon}
	}
	w, ok := e.catalog.Weapon(held)
	if !ok {
		return Result{}, &ItemError{Err: ErrNotAWeapon, Item: held}
	}

	ec := e.newContext(p, s, now)
	last, seen := e.actions.Last(p.PlayerID)
	e.actions.Record(p.PlayerID, now)
	if seen {
		delta := now.Sub(last)
		switch {
		case delta < e.settings.MinAttackInterval:
			return ec.penalize(true), nil
		case delta > e.settings.MaxAttackInterval:
			return ec.penalize(false), nil
		}
	}
	return ec.strike(w), nil
}

// penalize handles an attack outside the timing window: the player deals
// nothing and takes the opponent's damage. Death here skips the defeat
// deductions.
func (ec *encounterContext) penalize(tooFast bool) Result {
	opp, _ := ec.s.Opponent()
	if tooFast {
		ec.addf("Too fast! %s parried your strike and countered.", opp.Name)
	} else {
		ec.addf("You hesitated and %s struck first.", opp.Name)
	}
	absorbed, dealt := absorb(&ec.p.Shield, &ec.p.Health, opp.Damage)
	ec.addf("%s hits you for %s.", opp.Name, damageText(absorbed, dealt))
	if ec.p.Health <= 0 {
		ec.p.Health = 0
		ec.addf("%s cut you down. The %s is lost.", opp.Name, ec.s.Kind.Label())
		ec.close()
		return ec.result(OutcomePenaltyDeath, ec.s.Kind)
	}
	ec.status()
	return ec.result(OutcomePenalized, ec.s.Kind)
}

// strike applies the weapon to the current opponent and resolves the
// consequences: advance, completion or counter-attack.
func (ec *encounterContext) strike(w game.Item) Result {
	opp, _ := ec.s.Opponent()
	absorbed, dealt := absorb(&opp.Shield, &opp.HitPoints, w.Damage)

	if opp.HitPoints <= 0 {
		ec.p.Kills++
		ec.addf("You strike %s with your %s for %s. %s is defeated!", opp.Name, w.Name, damageText(absorbed, dealt), opp.Name)
		ec.pause()
		ec.s.Current++
		if ec.s.Current < len(ec.s.Opponents) {
			ec.add(ec.e.catalog.Stage(ec.s.Kind, ec.s.Current))
			ec.introduce()
			return ec.result(OutcomeAdvanced, ec.s.Kind)
		}
		return ec.complete()
	}

	ec.addf("You strike %s with your %s for %s. It has %d HP and %d shield left.",
		opp.Name, w.Name, damageText(absorbed, dealt), opp.HitPoints, opp.Shield)
	ec.pause()

	absorbed, dealt = absorb(&ec.p.Shield, &ec.p.Health, opp.Damage)
	ec.addf("%s strikes back for %s.", opp.Name, damageText(absorbed, dealt))
	if ec.p.Health <= 0 {
		return ec.defeat()
	}
	ec.status()
	return ec.result(OutcomeHit, ec.s.Kind)
}

// complete runs when the last opponent of the live session falls.
func (ec *encounterContext) complete() Result {
	if ec.s.Kind == game.KindAmbush {
		return ec.resume()
	}
	victory := ec.e.catalog.Narratives[ec.s.Kind].Victory
	if ec.ambush(victory) {
		return ec.result(OutcomeAmbushed, game.KindAmbush)
	}
	return ec.victory(ec.s.Kind, victory)
}
