package engine

import (
	"time"

	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/logging"
)

// Outcome names the state transition an engine call produced.
type Outcome string

const (
	OutcomeStarted      Outcome = "started"
	OutcomeHit          Outcome = "hit"
	OutcomeAdvanced     Outcome = "advanced"
	OutcomeAmbushed     Outcome = "ambushed"
	OutcomeResumed      Outcome = "resumed"
	OutcomeVictory      Outcome = "victory"
	OutcomeDefeat       Outcome = "defeat"
	OutcomePenalized    Outcome = "penalized"
	OutcomePenaltyDeath Outcome = "penalty_death"
	OutcomeUsed         Outcome = "used"
	OutcomeExited       Outcome = "exited"
)

// Terminal reports whether the outcome ended the session.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeVictory, OutcomeDefeat, OutcomePenaltyDeath, OutcomeExited:
		return true
	}
	return false
}

// Line is one reply message. PauseAfter is a pacing hint for the
// transport; the engine never sleeps.
type Line struct {
	Text       string
	PauseAfter time.Duration
}

// Result is what an engine call reports back to the caller.
type Result struct {
	Outcome   Outcome
	Kind      game.Kind
	SessionID string
	Lines     []Line
}

// Engine runs encounters. It is safe for concurrent use by different
// players; callers must serialize calls for the same player.
type Engine struct {
	catalog   *game.Catalog
	sessions  SessionStore
	cooldowns CooldownRegistry
	actions   ActionRegistry
	rng       Rand
	settings  Settings
}

// Option customizes an Engine.
type Option func(*Engine)

func WithSessionStore(s SessionStore) Option { return func(e *Engine) { e.sessions = s } }

func WithCooldownRegistry(c CooldownRegistry) Option { return func(e *Engine) { e.cooldowns = c } }

func WithActionRegistry(a ActionRegistry) Option { return func(e *Engine) { e.actions = a } }

func WithRand(r Rand) Option { return func(e *Engine) { e.rng = r } }

func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }

// New builds an engine over catalog with in-memory stores.
func New(catalog *game.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   catalog,
		sessions:  NewMemorySessionStore(),
		cooldowns: NewMemoryCooldowns(),
		actions:   NewMemoryActions(),
		settings:  DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed, err := seedSource()
		if err != nil {
			seed = time.Now().UnixNano()
			logging.Warn("crypto seed unavailable, seeding encounters from the clock", err, nil)
		}
		e.rng = NewRand(seed)
	}
	return e
}

// Catalog exposes the reference data the engine was built with.
func (e *Engine) Catalog() *game.Catalog { return e.catalog }

// Settings returns the active rules.
func (e *Engine) Settings() Settings { return e.settings }

// Session returns a copy of the player's active session.
func (e *Engine) Session(playerID string) (*Session, bool) {
	return e.sessions.Get(playerID)
}
