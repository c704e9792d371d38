package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
	"civictrack-be/middlewares"
)

// FeedRoutes sets up the feed, leaderboard and connectivity routes
func FeedRoutes(r *gin.Engine, feed *controllers.FeedController, board *controllers.LeaderboardController) {
	r.GET("/api/issues", middlewares.OptionalAuth(), feed.ListIssues)
	r.GET("/api/leaderboard", middlewares.OptionalAuth(), board.GetLeaderboard)

	status := r.Group("/api/status")
	{
		status.GET("", feed.GetStatus)
		status.POST("/retry", feed.RetryConnection)
		status.POST("/clear-cache", middlewares.AuthMiddleware(), feed.ClearCache)
	}
}
