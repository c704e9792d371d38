package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"civictrack-be/feed"
	"civictrack-be/models"
	"civictrack-be/offline"
	"civictrack-be/repository"
)

// FeedController serves the filtered issue feed and the connectivity
// status endpoints backing the offline banner.
type FeedController struct {
	feed  *feed.Controller
	cache *offline.Cache
}

func NewFeedController(f *feed.Controller, cache *offline.Cache) *FeedController {
	return &FeedController{feed: f, cache: cache}
}

// ListIssues returns the feed for the supplied filters and viewer location.
func (fc *FeedController) ListIssues(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewer := parseViewer(c)

	issues, err := fc.feed.Feed(c.Request.Context(), filters, viewer)
	if err != nil {
		var ferr *repository.FetchError
		if errors.As(err, &ferr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":     "Failed to load civic issues",
				"retryable": true,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": len(issues),
		"offline":     !fc.cache.IsOnline(),
	})
}

// GetStatus reports connectivity state and cache freshness.
func (fc *FeedController) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"state":           fc.cache.State(),
		"cachedIssues":    len(fc.cache.CachedIssues(ctx)),
		"lastCacheUpdate": fc.cache.LastUpdate(ctx),
	})
}

// RetryConnection runs the liveness probe on user request.
func (fc *FeedController) RetryConnection(c *gin.Context) {
	online := fc.cache.RetryConnection(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"online": online,
		"state":  fc.cache.State(),
	})
}

// ClearCache drops the persisted offline snapshot.
func (fc *FeedController) ClearCache(c *gin.Context) {
	fc.cache.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

func parseFilters(c *gin.Context) (models.FilterOptions, error) {
	filters := models.DefaultFilters()

	if raw := c.Query("status"); raw != "" && raw != "all" {
		for _, s := range strings.Split(raw, ",") {
			if !models.ValidStatus(s) {
				return filters, errors.New("invalid status: " + s)
			}
			filters.Status = append(filters.Status, models.IssueStatus(s))
		}
	}

	if raw := c.Query("categories"); raw != "" && raw != "all" {
		for _, s := range strings.Split(raw, ",") {
			if !models.ValidCategory(s) {
				return filters, errors.New("invalid category: " + s)
			}
			filters.Categories = append(filters.Categories, models.IssueCategory(s))
		}
	}

	if raw := c.Query("distance"); raw != "" {
		km, err := strconv.ParseFloat(raw, 64)
		if err != nil || km < 1 || km > 10 {
			return filters, errors.New("distance must be between 1 and 10 km")
		}
		filters.DistanceKm = km
	}

	switch sortBy := c.DefaultQuery("sort", "recent"); models.SortBy(sortBy) {
	case models.SortRecent, models.SortDistance, models.SortUpvotes:
		filters.SortBy = models.SortBy(sortBy)
	default:
		return filters, errors.New("invalid sort: " + sortBy)
	}

	return filters, nil
}

// parseViewer returns the viewer location when both coordinates are
// present and numeric, nil otherwise.
func parseViewer(c *gin.Context) *models.Location {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" || lngRaw == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return &models.Location{Latitude: lat, Longitude: lng}
}
