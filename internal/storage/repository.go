package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

// ErrProfileNotFound is returned when no profile exists for a player id.
var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	GetProfile(ctx context.Context, playerID string) (*game.Profile, error)
	CreateProfile(ctx context.Context, p *game.Profile) error
	SaveProfile(ctx context.Context, p *game.Profile) error
	// Leaderboard
	GetTopPlayers(ctx context.Context, limit int) ([]game.Profile, error)

	// Cooldown registry backing store; keyed by (player, kind).
	LastStart(ctx context.Context, playerID string, kind game.Kind) (time.Time, bool, error)
	RecordStart(ctx context.Context, playerID string, kind game.Kind, at time.Time) error
	ClearStart(ctx context.Context, playerID string, kind game.Kind) error
}
