package models

import (
	"time"

	"civictrack-be/geo"
)

// IssueCategory enum
type IssueCategory string

const (
	Roads        IssueCategory = "roads"
	Lighting     IssueCategory = "lighting"
	Water        IssueCategory = "water"
	Cleanliness  IssueCategory = "cleanliness"
	Safety       IssueCategory = "safety"
	Obstructions IssueCategory = "obstructions"
)

// Categories lists every valid issue category.
func Categories() []IssueCategory {
	return []IssueCategory{Roads, Lighting, Water, Cleanliness, Safety, Obstructions}
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case Roads, Lighting, Water, Cleanliness, Safety, Obstructions:
		return true
	}
	return false
}

// IssueStatus enum, ordered: reported -> verified -> in_progress -> resolved
type IssueStatus string

const (
	Reported   IssueStatus = "reported"
	Verified   IssueStatus = "verified"
	InProgress IssueStatus = "in_progress"
	Resolved   IssueStatus = "resolved"
)

// ValidStatus reports whether s names a known status.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case Reported, Verified, InProgress, Resolved:
		return true
	}
	return false
}

// Location is a coordinate with an optional human-readable address.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Coordinate returns the bare coordinate pair for distance math.
func (l Location) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// StatusUpdate is a single timeline entry. Entries are immutable once
// appended.
type StatusUpdate struct {
	Status    IssueStatus `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	Note      string      `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy string      `bson:"updatedBy" json:"updatedBy"`
}

// Issue represents a civic issue reported by a citizen.
//
// Timeline is append-only and chronological; it is never empty, its first
// entry has status "reported" and its last entry's status matches Status.
// Distance is computed relative to the viewer's location at read time and
// is never persisted.
type Issue struct {
	ID          string         `bson:"_id" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description" json:"description"`
	Category    IssueCategory  `bson:"category" json:"category"`
	Status      IssueStatus    `bson:"status" json:"status"`
	Location    Location       `bson:"location" json:"location"`
	Images      []string       `bson:"images" json:"images"`
	ReportedBy  string         `bson:"reportedBy" json:"reportedBy"`
	IsAnonymous bool           `bson:"isAnonymous" json:"isAnonymous"`
	ReportedAt  time.Time      `bson:"reportedAt" json:"reportedAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
	FlagCount   int            `bson:"flagCount" json:"flagCount"`
	Upvotes     int            `bson:"upvotes" json:"upvotes"`
	Distance    *float64       `bson:"-" json:"distance,omitempty"`
	Timeline    []StatusUpdate `bson:"timeline" json:"timeline"`
}

// AdvanceStatus appends a timeline entry and moves the issue to the entry's
// status, keeping the timeline invariant intact.
func (i *Issue) AdvanceStatus(u StatusUpdate) {
	i.Timeline = append(i.Timeline, u)
	i.Status = u.Status
	i.UpdatedAt = u.Timestamp
}
