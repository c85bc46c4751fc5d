package entities

// DashboardStats feeds the admin dashboard
type DashboardStats struct {
	ActiveCount    int64       `json:"active_count"`
	PendingCount   int64       `json:"pending_count"`
	PremiumCount   int64       `json:"premium_count"`
	LatestPending  []*Business `json:"latest_pending"`
	UpcomingEvents []*Event    `json:"upcoming_events"`
}
