package repository

import (
	"time"

	"civictrack-be/models"
)

// DemoIssues returns the seed data used by development deployments and
// tests: three issues around Sector 45, New Delhi, in different lifecycle
// stages. The slice is most-recent-first by report time.
func DemoIssues(now time.Time) []models.Issue {
	day := 24 * time.Hour

	return []models.Issue{
		{
			ID:          "1",
			Title:       "Large pothole on Main Street",
			Description: "Deep pothole causing damage to vehicles. Located near the traffic light intersection.",
			Category:    models.Roads,
			Status:      models.Reported,
			Location: models.Location{
				Latitude:  28.6139,
				Longitude: 77.2090,
				Address:   "Main Street, Sector 45, New Delhi",
			},
			Images:      []string{"/placeholder.svg"},
			ReportedBy:  "anonymous",
			IsAnonymous: true,
			ReportedAt:  now.Add(-2 * day),
			UpdatedAt:   now.Add(-2 * day),
			Upvotes:     12,
			Timeline: []models.StatusUpdate{
				{Status: models.Reported, Timestamp: now.Add(-2 * day), Note: "Issue reported by citizen", UpdatedBy: "System"},
			},
		},
		{
			ID:          "2",
			Title:       "Broken street light",
			Description: "Street light has been out for over a week, making the area unsafe at night.",
			Category:    models.Lighting,
			Status:      models.InProgress,
			Location: models.Location{
				Latitude:  28.6129,
				Longitude: 77.2080,
				Address:   "Park Avenue, Sector 45, New Delhi",
			},
			Images:     []string{"/placeholder.svg"},
			ReportedBy: "Rajesh Kumar",
			ReportedAt: now.Add(-5 * day),
			UpdatedAt:  now.Add(-1 * day),
			Upvotes:    8,
			Timeline: []models.StatusUpdate{
				{Status: models.Reported, Timestamp: now.Add(-5 * day), Note: "Issue reported by citizen", UpdatedBy: "Rajesh Kumar"},
				{Status: models.Verified, Timestamp: now.Add(-3 * day), Note: "Issue verified by municipal inspector", UpdatedBy: "Inspector Singh"},
				{Status: models.InProgress, Timestamp: now.Add(-1 * day), Note: "Repair work has started", UpdatedBy: "Maintenance Team"},
			},
		},
		{
			ID:          "3",
			Title:       "Garbage overflow near market",
			Description: "Garbage bins are overflowing and waste is scattered around the market area.",
			Category:    models.Cleanliness,
			Status:      models.Resolved,
			Location: models.Location{
				Latitude:  28.6149,
				Longitude: 77.2100,
				Address:   "Market Square, Sector 45, New Delhi",
			},
			Images:     []string{"/placeholder.svg"},
			ReportedBy: "Priya Sharma",
			ReportedAt: now.Add(-7 * day),
			UpdatedAt:  now.Add(-1 * day),
			Upvotes:    15,
			Timeline: []models.StatusUpdate{
				{Status: models.Reported, Timestamp: now.Add(-7 * day), Note: "Issue reported by citizen", UpdatedBy: "Priya Sharma"},
				{Status: models.Verified, Timestamp: now.Add(-5 * day), Note: "Issue verified and scheduled for cleanup", UpdatedBy: "Sanitation Department"},
				{Status: models.InProgress, Timestamp: now.Add(-2 * day), Note: "Cleanup operation started", UpdatedBy: "Cleanup Crew"},
				{Status: models.Resolved, Timestamp: now.Add(-1 * day), Note: "Area cleaned and additional bins installed", UpdatedBy: "Sanitation Department"},
			},
		},
	}
}
