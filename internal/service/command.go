package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericogr/siegebot/internal/game"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

// Verb is the action a command asks for.
type Verb string

const (
	VerbSiege          Verb = "siege"
	VerbRaid           Verb = "raid"
	VerbFortify        Verb = "fortify"
	VerbAssassinate    Verb = "assassinate"
	VerbAttack         Verb = "attack"
	VerbUse            Verb = "use"
	VerbExit           Verb = "exit"
	VerbInventory      Verb = "inventory"
	VerbRank           Verb = "rank"
	VerbCoffers        Verb = "coffers"
	VerbKills          Verb = "kills"
	VerbSieges         Verb = "sieges"
	VerbRaids          Verb = "raids"
	VerbFortifications Verb = "fortifications"
	VerbAssassinations Verb = "assassinations"
	VerbStats          Verb = "stats"
	VerbCooldowns      Verb = "cooldowns"
	VerbHelp           Verb = "help"
)

var verbs = map[string]Verb{
	"siege":          VerbSiege,
	"raid":           VerbRaid,
	"fortify":        VerbFortify,
	"assassinate":    VerbAssassinate,
	"assassination":  VerbAssassinate,
	"attack":         VerbAttack,
	"use":            VerbUse,
	"exit":           VerbExit,
	"flee":           VerbExit,
	"inventory":      VerbInventory,
	"inv":            VerbInventory,
	"rank":           VerbRank,
	"coffers":        VerbCoffers,
	"kills":          VerbKills,
	"sieges":         VerbSieges,
	"raids":          VerbRaids,
	"fortifications": VerbFortifications,
	"assassinations": VerbAssassinations,
	"stats":          VerbStats,
	"cooldowns":      VerbCooldowns,
	"help":           VerbHelp,
}

// Command is a parsed chat command. Arg holds the remaining words.
type Command struct {
	Verb Verb
	Arg  string
}

// Parse reads a command such as "/wl-attack Rusty Sword". The leading "/"
// and "wl-" are optional and the verb is case-insensitive.
func Parse(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	head := strings.ToLower(fields[0])
	head = strings.TrimPrefix(head, "/")
	head = strings.TrimPrefix(head, "wl-")
	verb, ok := verbs[head]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	return Command{Verb: verb, Arg: strings.Join(fields[1:], " ")}, nil
}

// StartKind returns the encounter kind a start command opens.
func (c Command) StartKind() (game.Kind, bool) {
	switch c.Verb {
	case VerbSiege:
		return game.KindSiege, true
	case VerbRaid:
		return game.KindRaid, true
	case VerbFortify:
		return game.KindFortify, true
	case VerbAssassinate:
		return game.KindAssassination, true
	}
	return "", false
}

// ReadOnly reports whether the command only reports profile data.
func (c Command) ReadOnly() bool {
	switch c.Verb {
	case VerbInventory, VerbRank, VerbCoffers, VerbKills, VerbSieges, VerbRaids,
		VerbFortifications, VerbAssassinations, VerbStats, VerbCooldowns, VerbHelp:
		return true
	}
	return false
}
