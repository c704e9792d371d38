package feed

import (
	"context"
	"sort"

	"civictrack-be/geo"
	"civictrack-be/models"
	"civictrack-be/offline"
	"civictrack-be/repository"
)

// Controller orchestrates the issue read path: source selection between the
// canonical repository and the offline snapshot, per-view distance
// attachment, filtering and stable sorting.
type Controller struct {
	repo  repository.IssueRepository
	cache *offline.Cache

	// MissingDistanceAsZero controls how issues without a computable
	// distance sort under "distance" ordering. The historical behavior
	// treats them as 0 km, which floats them to the front of a
	// nearest-first feed; set to false to sort them last instead.
	MissingDistanceAsZero bool
}

// New wires a feed controller. MissingDistanceAsZero defaults to the
// historical behavior.
func New(repo repository.IssueRepository, cache *offline.Cache) *Controller {
	return &Controller{
		repo:                  repo,
		cache:                 cache,
		MissingDistanceAsZero: true,
	}
}

// Feed returns the filtered, sorted issue list for the viewer.
//
// Online, issues come from the repository and the raw pre-filter slice is
// snapshotted to the offline cache (capped there at 20) together with the
// viewer location. Offline, the last snapshot is served instead; filters
// and sorting still apply. A repository failure surfaces as a retryable
// FetchError and leaves all state untouched.
func (c *Controller) Feed(ctx context.Context, filters models.FilterOptions, viewer *models.Location) ([]models.Issue, error) {
	var source []models.Issue
	if c.cache.IsOnline() {
		fetched, err := c.repo.List(ctx)
		if err != nil {
			return nil, &repository.FetchError{Err: err}
		}
		c.cache.CacheIssues(ctx, fetched, viewer)
		source = fetched
	} else {
		source = c.cache.CachedIssues(ctx)
	}

	out := make([]models.Issue, 0, len(source))
	for _, issue := range source {
		issue.Distance = nil
		if viewer != nil {
			d := geo.HaversineKm(viewer.Coordinate(), issue.Location.Coordinate())
			issue.Distance = &d
		}

		// Issues with no computable distance are never dropped by the
		// radius rule.
		if issue.Distance != nil && filters.DistanceKm > 0 && *issue.Distance > filters.DistanceKm {
			continue
		}
		if !filters.HasStatus(issue.Status) {
			continue
		}
		if !filters.HasCategory(issue.Category) {
			continue
		}
		out = append(out, issue)
	}

	c.sortIssues(out, filters.SortBy)
	return out, nil
}

func (c *Controller) sortIssues(issues []models.Issue, by models.SortBy) {
	switch by {
	case models.SortDistance:
		sort.SliceStable(issues, func(i, j int) bool {
			return c.distanceKey(issues[i]) < c.distanceKey(issues[j])
		})
	case models.SortUpvotes:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].Upvotes > issues[j].Upvotes
		})
	case models.SortRecent:
		fallthrough
	default:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].UpdatedAt.After(issues[j].UpdatedAt)
		})
	}
}

func (c *Controller) distanceKey(issue models.Issue) float64 {
	if issue.Distance != nil {
		return *issue.Distance
	}
	if c.MissingDistanceAsZero {
		return 0
	}
	// Sort unknown distances last.
	return geo.EarthRadiusKm * 4
}
