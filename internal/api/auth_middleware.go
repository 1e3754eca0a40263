package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
)

// AuthRequired validates the bearer token and injects the player id into
// the request context.
func AuthRequired(v *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		playerID, err := v.Verify(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			logging.Debug("rejected token", logging.Fields{constants.LogFieldSource: err.Error()})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidToken})
			return
		}
		c.Set(constants.ContextPlayerID, playerID)
		c.Next()
	}
}
