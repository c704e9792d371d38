package leaderboard

import (
	"context"
	"math"
	"sort"
	"time"

	"civictrack-be/models"
	"civictrack-be/repository"
)

// Service derives the ranked contributor list from reported issues.
type Service struct {
	repo repository.IssueRepository
	now  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New wires a leaderboard service over the issue repository.
func New(repo repository.IssueRepository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Top returns contributors ranked by report count within the timeframe,
// most reports first. Anonymous reports never score. currentUser, when
// non-empty, marks the matching entry.
func (s *Service) Top(ctx context.Context, tf models.Timeframe, currentUser string) ([]models.LeaderboardUser, error) {
	issues, err := s.repo.List(ctx)
	if err != nil {
		return nil, &repository.FetchError{Err: err}
	}

	cutoff := s.cutoff(tf)

	type tally struct {
		reports  int
		resolved int
		first    int // first appearance, for stable ordering
	}
	totals := make(map[string]*tally)
	order := make([]string, 0)

	for i, issue := range issues {
		if issue.IsAnonymous || issue.ReportedBy == "" {
			continue
		}
		if !cutoff.IsZero() && issue.ReportedAt.Before(cutoff) {
			continue
		}
		t, ok := totals[issue.ReportedBy]
		if !ok {
			t = &tally{first: i}
			totals[issue.ReportedBy] = t
			order = append(order, issue.ReportedBy)
		}
		t.reports++
		if issue.Status == models.Resolved {
			t.resolved++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := totals[order[i]], totals[order[j]]
		if a.reports != b.reports {
			return a.reports > b.reports
		}
		return a.first < b.first
	})

	users := make([]models.LeaderboardUser, 0, len(order))
	for i, name := range order {
		t := totals[name]
		pct := 0
		if t.reports > 0 {
			pct = int(math.Round(float64(t.resolved) / float64(t.reports) * 100))
		}
		users = append(users, models.LeaderboardUser{
			ID:                 name,
			Name:               name,
			ReportsCount:       t.reports,
			ResolvedCount:      t.resolved,
			VerifiedPercentage: pct,
			Rank:               i + 1,
			Badge:              badgeFor(t.reports, pct),
			IsCurrentUser:      currentUser != "" && name == currentUser,
		})
	}
	return users, nil
}

// badgeFor awards the strongest badge the totals earn.
func badgeFor(reports, verifiedPct int) string {
	switch {
	case reports >= 50:
		return models.BadgeStreetStar
	case verifiedPct >= 80:
		return models.BadgeCleanChamp
	case reports >= 25:
		return models.BadgeReportPro
	}
	return ""
}

func (s *Service) cutoff(tf models.Timeframe) time.Time {
	switch tf {
	case models.TimeframeWeekly:
		return s.now().AddDate(0, 0, -7)
	case models.TimeframeMonthly:
		return s.now().AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}
