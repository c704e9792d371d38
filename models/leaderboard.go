package models

// Timeframe selects the leaderboard aggregation window.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAllTime Timeframe = "all-time"
)

// ValidTimeframe reports whether s names a known timeframe.
func ValidTimeframe(s string) bool {
	switch Timeframe(s) {
	case TimeframeWeekly, TimeframeMonthly, TimeframeAllTime:
		return true
	}
	return false
}

// Badge names awarded on the leaderboard.
const (
	BadgeStreetStar = "street_star"
	BadgeCleanChamp = "clean_champ"
	BadgeReportPro  = "report_pro"
)

// LeaderboardUser is a derived reporting entity ranked by report count.
type LeaderboardUser struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Avatar             string `json:"avatar,omitempty"`
	ReportsCount       int    `json:"reportsCount"`
	ResolvedCount      int    `json:"resolvedCount"`
	VerifiedPercentage int    `json:"verifiedPercentage"`
	Rank               int    `json:"rank"`
	Badge              string `json:"badge,omitempty"`
	IsCurrentUser      bool   `json:"isCurrentUser,omitempty"`
}
