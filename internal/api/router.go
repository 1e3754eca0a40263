package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
)

// NewRouter wires the handlers. The leaderboard and metadata routes are
// public; everything else needs a gateway token.
func NewRouter(h *Handler, v *TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		protected := apiRoutes.Group("")
		protected.Use(AuthRequired(v))
		protected.POST(constants.RouteCommands, h.HandleCommand)
		protected.GET(constants.RoutePlayerByID, h.GetPlayer)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.FullPath() == constants.RouteHealth {
			return
		}
		logging.Debug("request", logging.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
