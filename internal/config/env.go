package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ericogr/siegebot/internal/engine"
	"github.com/ericogr/siegebot/internal/game"
)

// Env holds the process settings read from the environment.
type Env struct {
	Addr          string `env:"SIEGEBOT_ADDR" envDefault:":8080"`
	DBPath        string `env:"SIEGEBOT_DB" envDefault:"./data/siegebot.db"`
	CatalogPath   string `env:"SIEGEBOT_CATALOG"`
	GatewaySecret string `env:"SIEGEBOT_GATEWAY_SECRET"`
	OTelEndpoint  string `env:"SIEGEBOT_OTEL_ENDPOINT"`

	SessionIdleTTL time.Duration `env:"SIEGEBOT_SESSION_IDLE_TTL" envDefault:"0s"`

	CooldownSiege         time.Duration `env:"SIEGEBOT_COOLDOWN_SIEGE" envDefault:"12h"`
	CooldownRaid          time.Duration `env:"SIEGEBOT_COOLDOWN_RAID" envDefault:"3h"`
	CooldownFortify       time.Duration `env:"SIEGEBOT_COOLDOWN_FORTIFY" envDefault:"24h"`
	CooldownAssassination time.Duration `env:"SIEGEBOT_COOLDOWN_ASSASSINATION" envDefault:"1h"`

	MinAttackInterval time.Duration `env:"SIEGEBOT_MIN_ATTACK_INTERVAL" envDefault:"3s"`
	MaxAttackInterval time.Duration `env:"SIEGEBOT_MAX_ATTACK_INTERVAL" envDefault:"15s"`
	PacingDelay       time.Duration `env:"SIEGEBOT_PACING_DELAY" envDefault:"1.5s"`

	AmbushHighChance float64 `env:"SIEGEBOT_AMBUSH_HIGH_CHANCE" envDefault:"1.0"`
	AmbushBaseChance float64 `env:"SIEGEBOT_AMBUSH_BASE_CHANCE" envDefault:"0.001"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses and validates Env.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Env) Validate() error {
	if c.MinAttackInterval < 0 || c.MaxAttackInterval < c.MinAttackInterval {
		return fmt.Errorf("attack interval window %s..%s is invalid", c.MinAttackInterval, c.MaxAttackInterval)
	}
	for name, d := range map[string]time.Duration{
		"siege": c.CooldownSiege, "raid": c.CooldownRaid,
		"fortify": c.CooldownFortify, "assassination": c.CooldownAssassination,
		"session idle ttl": c.SessionIdleTTL, "pacing delay": c.PacingDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s duration must not be negative", name)
		}
	}
	for name, p := range map[string]float64{"high": c.AmbushHighChance, "base": c.AmbushBaseChance} {
		if p < 0 || p > 1 {
			return fmt.Errorf("ambush %s chance %v must be within [0,1]", name, p)
		}
	}
	return nil
}

// EngineSettings maps the environment onto the engine rules.
func (c Env) EngineSettings() engine.Settings {
	s := engine.DefaultSettings()
	s.Cooldowns = map[game.Kind]time.Duration{
		game.KindSiege:         c.CooldownSiege,
		game.KindRaid:          c.CooldownRaid,
		game.KindFortify:       c.CooldownFortify,
		game.KindAssassination: c.CooldownAssassination,
	}
	s.MinAttackInterval = c.MinAttackInterval
	s.MaxAttackInterval = c.MaxAttackInterval
	s.PacingDelay = c.PacingDelay
	s.AmbushEliteChance = c.AmbushHighChance
	s.AmbushBaseChance = c.AmbushBaseChance
	return s
}
