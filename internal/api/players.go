package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/keys"
	"github.com/ericogr/siegebot/internal/logging"
	"github.com/ericogr/siegebot/internal/storage"
)

// GetPlayer returns the public record of a player. The inventory is only
// shown to its owner.
func (h *Handler) GetPlayer(c *gin.Context) {
	id := keys.PlayerID(c.Param("playerID"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.svc.Profile(c.Request.Context(), id)
	if errors.Is(err, storage.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	if err != nil {
		logging.Error("failed to fetch player", err, logging.Fields{constants.LogFieldPlayerID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPlayer})
		return
	}
	c.JSON(http.StatusOK, newProfileView(p, id == c.GetString(constants.ContextPlayerID)))
}

// ListLeaderboard returns the top players by kills, 10 by default.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	limit, ok := parseLimit(c.Query("limit"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidLimit})
		return
	}
	players, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out := make([]profileView, 0, len(players))
	for i := range players {
		out = append(out, newProfileView(&players[i], false))
	}
	c.JSON(http.StatusOK, out)
}
