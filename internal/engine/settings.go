package engine

import (
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// Settings holds the tunable numbers of the encounter rules.
type Settings struct {
	Cooldowns map[game.Kind]time.Duration

	// Attacks closer together than MinAttackInterval are parried, attacks
	// further apart than MaxAttackInterval are hesitations. Both bounds are
	// inside the window.
	MinAttackInterval time.Duration
	MaxAttackInterval time.Duration

	// PacingDelay is attached to lines that should be followed by a pause.
	PacingDelay time.Duration

	AmbushEliteChance float64
	AmbushBaseChance  float64

	VictoryExperience int
	VictoryCoffers    int
	DefeatExperience  int
	DefeatCoffers     int
}

// DefaultSettings returns the stock rules.
func DefaultSettings() Settings {
	return Settings{
		Cooldowns: map[game.Kind]time.Duration{
			game.KindSiege:         12 * time.Hour,
			game.KindRaid:          3 * time.Hour,
			game.KindFortify:       24 * time.Hour,
			game.KindAssassination: time.Hour,
		},
		MinAttackInterval: 3 * time.Second,
		MaxAttackInterval: 15 * time.Second,
		PacingDelay:       1500 * time.Millisecond,
		AmbushEliteChance: 1.0,
		AmbushBaseChance:  0.001,
		VictoryExperience: 10,
		VictoryCoffers:    15,
		DefeatExperience:  5,
		DefeatCoffers:     10,
	}
}

// rosterSizes bounds the number of opponents drawn per kind (inclusive).
var rosterSizes = map[game.Kind][2]int{
	game.KindSiege:         {3, 5},
	game.KindRaid:          {1, 3},
	game.KindFortify:       {5, 7},
	game.KindAssassination: {1, 1},
}
