package engine

import (
	"strings"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Use consumes one unit of a consumable or armor item during an encounter.
// It is outside the timing window and leaves the attack clock alone.
func (e *Engine) Use(p *game.Profile, item string, now time.Time) (Result, error) {
	s, ok := e.sessions.Get(p.PlayerID)
	if !ok {
		return Result{}, ErrNoActiveEncounter
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return Result{}, ErrChooseItem
	}
	held, ok := p.Inventory.Lookup(item)
	if !ok {
		return Result{}, &ItemError{Err: ErrItemNotOwned, Item: item}
	}
	it, ok := e.catalog.Item(held)
	if !ok {
		return Result{}, &ItemError{Err: ErrNotUsable, Item: held}
	}

	ec := e.newContext(p, s, now)
	switch {
	case it.Kind == game.ItemConsumable && it.Heal > 0:
		before := p.Health
		p.Health = minInt(game.MaxHealth, p.Health+it.Heal)
		ec.addf("You use %s and recover %d health.", held, p.Health-before)
	case it.Kind == game.ItemArmor && it.Shield > 0:
		before := p.Shield
		p.Shield = minInt(game.MaxShield, p.Shield+it.Shield)
		ec.addf("You equip %s and gain %d shield.", held, p.Shield-before)
	default:
		return Result{}, &ItemError{Err: ErrNotUsable, Item: held}
	}
	p.RemoveItem(held, 1)
	ec.status()
	return ec.result(OutcomeUsed, s.Kind), nil
}
