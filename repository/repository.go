package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"civictrack-be/models"
)

// ErrNotFound is returned when an issue id does not exist.
var ErrNotFound = errors.New("issue not found")

// ValidationError rejects a draft with a missing required field. No partial
// write happens when it is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// FetchError wraps a failure to load the issue list. It is retryable and
// never corrupts already-loaded state.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to load civic issues: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Draft is the citizen-supplied part of a new issue.
type Draft struct {
	Title       string
	Description string
	Category    models.IssueCategory
	Status      models.IssueStatus
	Location    models.Location
	Images      []string
	ReportedBy  string
	IsAnonymous bool
}

// IssueRepository is the canonical issue source. Implementations: Mongo for
// production, Memory for development and tests.
type IssueRepository interface {
	// List returns all known issues, most recent first.
	List(ctx context.Context) ([]models.Issue, error)
	// Get returns a single issue or ErrNotFound.
	Get(ctx context.Context, id string) (models.Issue, error)
	// Create validates the draft and stores a new issue.
	Create(ctx context.Context, draft Draft) (models.Issue, error)
	// Upvote records userID's upvote and returns the updated count.
	// Idempotent per user: repeats do not increment.
	Upvote(ctx context.Context, issueID, userID string) (int, error)
	// Flag records userID's flag and returns the updated count.
	// Idempotent per user.
	Flag(ctx context.Context, issueID, userID string) (int, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// ValidateDraft enforces the required fields shared by all implementations.
func ValidateDraft(d Draft) error {
	if d.Title == "" {
		return &ValidationError{Field: "title"}
	}
	if d.Description == "" {
		return &ValidationError{Field: "description"}
	}
	if d.Category == "" {
		return &ValidationError{Field: "category"}
	}
	if !models.ValidCategory(string(d.Category)) {
		return &ValidationError{Field: "category"}
	}
	return nil
}

// NewIssue materializes a validated draft: timestamp-based id, zeroed
// counters, and a timeline seeded with the initial report entry.
func NewIssue(d Draft, now time.Time) models.Issue {
	status := d.Status
	if status == "" {
		status = models.Reported
	}

	updatedBy := d.ReportedBy
	if d.IsAnonymous {
		updatedBy = "Anonymous"
	}

	return models.Issue{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Status:      status,
		Location:    d.Location,
		Images:      d.Images,
		ReportedBy:  d.ReportedBy,
		IsAnonymous: d.IsAnonymous,
		ReportedAt:  now,
		UpdatedAt:   now,
		Timeline: []models.StatusUpdate{{
			Status:    status,
			Timestamp: now,
			Note:      "Issue reported by citizen",
			UpdatedBy: updatedBy,
		}},
	}
}
