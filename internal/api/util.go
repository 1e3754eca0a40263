package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// parseLimit reads an optional ?limit=N. Values above the maximum are
// clamped; anything that is not a positive integer is rejected.
func parseLimit(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLeaderboardLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > maxLeaderboardLimit {
		n = maxLeaderboardLimit
	}
	return n, true
}

// profileView is the API shape of a profile, with snake_case timestamps
// and no gorm bookkeeping.
type profileView struct {
	PlayerID       string         `json:"player_id"`
	Rank           string         `json:"rank"`
	Health         int            `json:"health"`
	Shield         int            `json:"shield"`
	Coffers        int            `json:"coffers"`
	Experience     int            `json:"experience"`
	Kills          int            `json:"kills"`
	Sieges         int            `json:"sieges"`
	Raids          int            `json:"raids"`
	Fortifications int            `json:"fortifications"`
	Assassinations int            `json:"assassinations"`
	Inventory      game.Inventory `json:"inventory,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func newProfileView(p *game.Profile, withInventory bool) profileView {
	v := profileView{
		PlayerID:       p.PlayerID,
		Rank:           p.Rank,
		Health:         p.Health,
		Shield:         p.Shield,
		Coffers:        p.Coffers,
		Experience:     p.Experience,
		Kills:          p.Kills,
		Sieges:         p.Sieges,
		Raids:          p.Raids,
		Fortifications: p.Fortifications,
		Assassinations: p.Assassinations,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if withInventory {
		v.Inventory = p.Inventory
	}
	return v
}
