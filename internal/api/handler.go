package api

import (
	"context"

	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/service"
)

// Commands is the slice of the service the HTTP handlers call.
type Commands interface {
	Handle(ctx context.Context, playerID, text string) (service.Reply, error)
	Profile(ctx context.Context, playerID string) (*game.Profile, error)
	Leaderboard(ctx context.Context, limit int) ([]game.Profile, error)
}

// Handler groups the HTTP handlers.
type Handler struct {
	svc Commands
}

func NewHandler(svc Commands) *Handler {
	return &Handler{svc: svc}
}
