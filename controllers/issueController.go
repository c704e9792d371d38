package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civictrack-be/classifier"
	"civictrack-be/models"
	"civictrack-be/repository"
)

const maxIssueImages = 5

// IssueController handles issue creation, lookup and reactions.
type IssueController struct {
	repo       repository.IssueRepository
	classifier classifier.Classifier
}

func NewIssueController(repo repository.IssueRepository, cls classifier.Classifier) *IssueController {
	return &IssueController{repo: repo, classifier: cls}
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	reporter := currentUser(c)
	if reporter == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		Latitude    float64  `json:"latitude"`
		Longitude   float64  `json:"longitude"`
		Address     string   `json:"address"`
		Images      []string `json:"images"`
		IsAnonymous bool     `json:"isAnonymous"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if len(input.Images) > maxIssueImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At most 5 images per issue"})
		return
	}

	issue, err := ic.repo.Create(c.Request.Context(), repository.Draft{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Location: models.Location{
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
			Address:   input.Address,
		},
		Images:      input.Images,
		ReportedBy:  reporter,
		IsAnonymous: input.IsAnonymous,
	})
	if err != nil {
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpvoteIssue records the caller's upvote. Repeats by the same user are
// no-ops.
func (ic *IssueController) UpvoteIssue(c *gin.Context) {
	ic.react(c, ic.repo.Upvote, "upvotes")
}

// FlagIssue records the caller's flag. Repeats by the same user are no-ops.
func (ic *IssueController) FlagIssue(c *gin.Context) {
	ic.react(c, ic.repo.Flag, "flagCount")
}

func (ic *IssueController) react(c *gin.Context, op func(ctx context.Context, issueID, userID string) (int, error), field string) {
	userID := currentUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := op(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reaction"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{field: count})
}

// SuggestCategory proposes a category for an uploaded image name.
func (ic *IssueController) SuggestCategory(c *gin.Context) {
	var input struct {
		ImageName string `json:"imageName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := ic.classifier.Classify(c.Request.Context(), input.ImageName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func currentUser(c *gin.Context) string {
	if v, exists := c.Get("user_id"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
