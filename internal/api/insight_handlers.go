package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sherm18/ThriveOS/internal"
	"github.com/sherm18/ThriveOS/internal/service"
)

func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		sleepStats, err := service.CalculateSleepStats(c.Request.Context(), app.EntryRepo(), user)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to compute stats")
			return
		}

		HandleSuccess(c, app.Logger(), sleepStats, nil)
	}
}

func GetBadges(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		collection, err := service.EvaluateBadges(c.Request.Context(), app.EntryRepo(), app.BadgeRepo(), user, time.Now())
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to evaluate badges")
			return
		}

		var meta map[string]any
		if len(collection.NewlyEarned) > 0 {
			meta = map[string]any{"newly_earned": collection.NewlyEarned}
		}
		HandleSuccess(c, app.Logger(), collection, meta)
	}
}

func GetLeaderboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		board, err := service.CalculateLeaderboard(c.Request.Context(), app.EntryRepo(), app.UserRepo(), user)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to build leaderboard")
			return
		}

		HandleSuccess(c, app.Logger(), board, map[string]any{"total_users": len(board)})
	}
}
