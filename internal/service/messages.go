package service

import (
	"errors"
	"fmt"

	"github.com/ericogr/siegebot/internal/engine"
	"github.com/ericogr/siegebot/internal/game"
)

const helpHint = "Type /wl-help for the list of commands."

var helpLines = []string{
	"Encounters: /wl-siege, /wl-raid, /wl-fortify, /wl-assassinate",
	"In combat: /wl-attack <weapon>, /wl-use <item>, /wl-exit",
	"Strike at a steady pace: too fast and you are parried, too slow and you hesitate.",
	"Records: /wl-inventory, /wl-rank, /wl-coffers, /wl-kills, /wl-sieges, /wl-raids, /wl-fortifications, /wl-assassinations, /wl-stats, /wl-cooldowns",
	"Add @player to a record command to look at someone else.",
}

// userMessage renders recoverable engine errors as reply text. It returns
// false for errors that must fail the request.
func userMessage(err error) (string, bool) {
	var already *engine.AlreadyInEncounterError
	if errors.As(err, &already) {
		if already.Kind == game.KindAmbush {
			return "You are fighting off an ambush! Deal with it before starting anything else.", true
		}
		return fmt.Sprintf("You are already in a %s. Finish it or /wl-exit first.", already.Kind.Label()), true
	}
	var cd *engine.CooldownError
	if errors.As(err, &cd) {
		return fmt.Sprintf("Your forces are still recovering. You can start another %s in %d hours and %d minutes.",
			cd.Kind.Label(), cd.Hours(), cd.Minutes()), true
	}
	var item *engine.ItemError
	if errors.As(err, &item) {
		switch {
		case errors.Is(err, engine.ErrItemNotOwned):
			return fmt.Sprintf("You don't have %q.", item.Item), true
		case errors.Is(err, engine.ErrNotAWeapon):
			return fmt.Sprintf("%s is not a weapon.", item.Item), true
		case errors.Is(err, engine.ErrNotUsable):
			return fmt.Sprintf("%s can't be used that way.", item.Item), true
		}
	}
	switch {
	case errors.Is(err, engine.ErrNoActiveEncounter):
		return "You are not in an encounter. Start one with /wl-siege, /wl-raid, /wl-fortify or /wl-assassinate.", true
	case errors.Is(err, engine.ErrNoOpponents):
		return "There is no one left to fight. The encounter has ended.", true
	case errors.Is(err, engine.ErrNoWeapon):
		return "Your inventory is empty. You have nothing to fight with.", true
	case errors.Is(err, engine.ErrChooseWeapon):
		return "Choose a weapon: /wl-attack <weapon>.", true
	case errors.Is(err, engine.ErrChooseItem):
		return "Choose an item: /wl-use <item>.", true
	}
	return "", false
}
