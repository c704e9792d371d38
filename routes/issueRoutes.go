package routes

import (
	"github.com/gin-gonic/gin"

	"civictrack-be/controllers"
	"civictrack-be/middlewares"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, issue *controllers.IssueController, rateLimiter gin.HandlerFunc) {
	group := r.Group("/api/issue")
	{
		group.POST("/create", middlewares.AuthMiddleware(), rateLimiter, issue.CreateIssue)
		group.GET("/:id", issue.GetIssue)
		group.POST("/:id/upvote", middlewares.AuthMiddleware(), issue.UpvoteIssue)
		group.POST("/:id/flag", middlewares.AuthMiddleware(), issue.FlagIssue)
	}
	r.POST("/api/suggest", issue.SuggestCategory)
}
