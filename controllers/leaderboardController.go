package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civictrack-be/leaderboard"
	"civictrack-be/models"
)

// LeaderboardController serves the ranked contributor list.
type LeaderboardController struct {
	svc *leaderboard.Service
}

func NewLeaderboardController(svc *leaderboard.Service) *LeaderboardController {
	return &LeaderboardController{svc: svc}
}

// GetLeaderboard returns contributors for the requested timeframe.
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", string(models.TimeframeWeekly))
	if !models.ValidTimeframe(timeframe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeframe"})
		return
	}

	users, err := lc.svc.Top(c.Request.Context(), models.Timeframe(timeframe), currentUser(c))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Failed to load leaderboard",
			"retryable": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timeframe": timeframe,
		"users":     users,
	})
}
