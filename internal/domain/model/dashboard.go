//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ContentCounts breaks a content type down by lifecycle status.
type ContentCounts struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

// DashboardSummary counts the main content types.
type DashboardSummary struct {
	Products ContentCounts `json:"products"`
	Blogs    ContentCounts `json:"blogs"`
	Services ContentCounts `json:"services"`
}

// Dashboard read defaults.
const (
	DefaultVisitorPeriod  = "daily"
	DefaultDashboardLimit = 3
)

// VisitorData aggregates site visits.
type VisitorData struct {
	Total     int            `json:"total"`
	ByPeriod  map[string]int `json:"by_period"`
	ByBrowser map[string]int `json:"by_browser"`
	Period    string         `json:"period"`
}

// ZeroVisitorData returns empty visitor stats for period, with non-nil maps.
func ZeroVisitorData(period string) VisitorData {
	return VisitorData{ByPeriod: map[string]int{}, ByBrowser: map[string]int{}, Period: period}
}

// RecentActivity is one entry of the dashboard activity feed.
type RecentActivity struct {
	Type               string  `json:"type"`
	Title              string  `json:"title"`
	Subtitle           string  `json:"subtitle"`
	Image              *string `json:"image"`
	UpdatedAt          string  `json:"updated_at"`
	FormattedUpdatedAt string  `json:"formatted_updated_at"`
}

// DashboardData is the combined dashboard payload.
type DashboardData struct {
	Summary        DashboardSummary `json:"summary"`
	Visitors       VisitorData      `json:"visitors"`
	TopBlogs       []BlogPost       `json:"top_blogs"`
	RecentActivity []RecentActivity `json:"recent_activity"`
	DetailedStats  any              `json:"detailed_stats"`
}

// ZeroDashboard is the payload shown when the dashboard cannot be loaded.
func ZeroDashboard() DashboardData {
	return DashboardData{
		Visitors:       ZeroVisitorData(DefaultVisitorPeriod),
		TopBlogs:       []BlogPost{},
		RecentActivity: []RecentActivity{},
	}
}

// DashboardOverview is the composite view assembled from the individual dashboard reads.
type DashboardOverview struct {
	Data           DashboardData    `json:"data"`
	Visitors       VisitorData      `json:"visitors"`
	TopBlogs       []BlogPost       `json:"top_blogs"`
	RecentActivity []RecentActivity `json:"recent_activity"`
}
