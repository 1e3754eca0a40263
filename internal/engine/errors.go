package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Sentinel errors returned by engine operations. User-input errors leave
// the session untouched so the player can retry.
var (
	ErrAlreadyInEncounter = errors.New("already in an encounter")
	ErrCooldownActive     = errors.New("encounter on cooldown")
	ErrNoActiveEncounter  = errors.New("no active encounter")
	ErrNoOpponents        = errors.New("encounter has no opponent to fight")
	ErrNoWeapon           = errors.New("inventory is empty")
	ErrChooseWeapon       = errors.New("no weapon chosen")
	ErrItemNotOwned       = errors.New("item not owned")
	ErrNotAWeapon         = errors.New("item is not a weapon")
	ErrChooseItem         = errors.New("no item chosen")
	ErrNotUsable          = errors.New("item cannot be used")
	ErrNoOpponentsForTier = errors.New("no opponents configured for tier")
	ErrUnknownKind        = errors.New("unknown encounter kind")
)

// AlreadyInEncounterError reports which session blocks a new start.
type AlreadyInEncounterError struct {
	Kind game.Kind
}

func (e *AlreadyInEncounterError) Error() string {
	return fmt.Sprintf("%s: %s in progress", ErrAlreadyInEncounter, e.Kind)
}

func (e *AlreadyInEncounterError) Is(target error) bool { return target == ErrAlreadyInEncounter }

// CooldownError carries the time left before kind can be started again.
type CooldownError struct {
	Kind      game.Kind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s available in %dh%02dm", ErrCooldownActive, e.Kind, e.Hours(), e.Minutes())
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldownActive }

// Hours is the whole-hour part of the remaining time.
func (e *CooldownError) Hours() int {
	if e.Remaining <= 0 {
		return 0
	}
	return int(e.Remaining / time.Hour)
}

// Minutes is the minute part left after Hours.
func (e *CooldownError) Minutes() int {
	if e.Remaining <= 0 {
		return 0
	}
	return int((e.Remaining % time.Hour) / time.Minute)
}

// ItemError ties an inventory error to the item name the player typed.
type ItemError struct {
	Err  error
	Item string
}

func (e *ItemError) Error() string { return fmt.Sprintf("%s: %q", e.Err, e.Item) }

func (e *ItemError) Unwrap() error { return e.Err }
