package models

// SortBy enum for feed ordering.
type SortBy string

const (
	SortRecent   SortBy = "recent"
	SortDistance SortBy = "distance"
	SortUpvotes  SortBy = "upvotes"
)

// MapView enum
type MapView string

const (
	MapViewPins    MapView = "pins"
	MapViewHeatmap MapView = "heatmap"
)

// MapStyle enum
type MapStyle string

const (
	MapStyleDefault   MapStyle = "default"
	MapStyleSatellite MapStyle = "satellite"
)

// FilterOptions selects and orders the issue feed. An empty Status or
// Categories slice means "no filter on that dimension": every issue passes.
type FilterOptions struct {
	Status     []IssueStatus   `json:"status"`
	Categories []IssueCategory `json:"categories"`
	DistanceKm float64         `json:"distance"`
	SortBy     SortBy          `json:"sortBy"`
	MapView    MapView         `json:"mapView"`
	MapStyle   MapStyle        `json:"mapStyle"`
}

// DefaultFilters returns the filter set a fresh session starts with:
// 5 km radius, most recently updated first, pin map.
func DefaultFilters() FilterOptions {
	return FilterOptions{
		DistanceKm: 5,
		SortBy:     SortRecent,
		MapView:    MapViewPins,
		MapStyle:   MapStyleDefault,
	}
}

// HasStatus reports whether the status filter admits s.
func (f FilterOptions) HasStatus(s IssueStatus) bool {
	if len(f.Status) == 0 {
		return true
	}
	for _, v := range f.Status {
		if v == s {
			return true
		}
	}
	return false
}

// HasCategory reports whether the category filter admits c.
func (f FilterOptions) HasCategory(c IssueCategory) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, v := range f.Categories {
		if v == c {
			return true
		}
	}
	return false
}
