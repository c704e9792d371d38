package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"civictrack-be/classifier"
	"civictrack-be/config"
	"civictrack-be/controllers"
	"civictrack-be/feed"
	"civictrack-be/leaderboard"
	"civictrack-be/middlewares"
	"civictrack-be/offline"
	"civictrack-be/repository"
	"civictrack-be/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Production runs against MongoDB; without MONGODB_URI the service
	// falls back to the seeded in-memory repository for local development.
	var repo repository.IssueRepository
	var auth *controllers.AuthController
	if os.Getenv("MONGODB_URI") != "" {
		db := config.ConnectDB()
		mongoRepo, err := repository.NewMongo(db)
		if err != nil {
			log.Fatalf("Failed to initialize issue repository: %v", err)
		}
		repo = mongoRepo
		auth = controllers.NewAuthController(db.Collection("users"))
	} else {
		log.Println("MONGODB_URI not set, using in-memory issue repository")
		repo = repository.NewMemory(repository.DemoIssues(time.Now()))
	}

	// Redis backs the offline snapshot and the per-user report limit.
	var cacheStore offline.Store
	var rateLimiter gin.HandlerFunc
	if os.Getenv("REDIS_ADDRESS") != "" {
		client := config.ConnectRedis()
		cacheStore = offline.NewRedisStore(client)
		rateLimiter = middlewares.IssueRateLimiter(client, issueLimitPerDay())
	} else {
		log.Println("REDIS_ADDRESS not set, offline cache is in-process only")
		cacheStore = offline.NewMemoryStore()
		rateLimiter = middlewares.IssueRateLimiter(nil, 0)
	}

	cache := offline.New(cacheStore, repo.Ping)
	go offline.Watch(context.Background(), cache, 30*time.Second)

	feedCtrl := feed.New(repo, cache)
	boardSvc := leaderboard.New(repo)
	keyword := classifier.NewKeyword(time.Now().UnixNano())

	issueController := controllers.NewIssueController(repo, keyword)
	feedController := controllers.NewFeedController(feedCtrl, cache)
	boardController := controllers.NewLeaderboardController(boardSvc)

	if auth != nil {
		routes.AuthRoutes(r, auth)
	}
	routes.IssueRoutes(r, issueController, rateLimiter)
	routes.FeedRoutes(r, feedController, boardController)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

func issueLimitPerDay() int {
	// Matches the product cap on reports per citizen per day.
	return 10
}
