package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
	"github.com/ericogr/siegebot/internal/service"
)

type commandRequest struct {
	Text    string `json:"text"`
	Channel string `json:"channel"`
}

type lineResponse struct {
	Text         string `json:"text"`
	PauseAfterMS int64  `json:"pause_after_ms,omitempty"`
}

type commandResponse struct {
	Command   string         `json:"command,omitempty"`
	Outcome   string         `json:"outcome,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Lines     []lineResponse `json:"lines"`
}

func toCommandResponse(r service.Reply) commandResponse {
	out := commandResponse{
		Command:   string(r.Command.Verb),
		Outcome:   string(r.Outcome),
		SessionID: r.SessionID,
		Lines:     make([]lineResponse, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, lineResponse{Text: l.Text, PauseAfterMS: l.PauseAfter.Milliseconds()})
	}
	return out
}

// HandleCommand runs one chat command for the authenticated player.
// Rejected commands still answer 200 with the reply text.
func (h *Handler) HandleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCommandRequired})
		return
	}
	playerID := c.GetString(constants.ContextPlayerID)
	reply, err := h.svc.Handle(c.Request.Context(), playerID, req.Text)
	if err != nil {
		logging.Error("command failed", err, logging.Fields{
			constants.LogFieldPlayerID: playerID,
			constants.LogFieldChannel:  req.Channel,
		})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedHandleCommand})
		return
	}
	c.JSON(http.StatusOK, toCommandResponse(reply))
}
