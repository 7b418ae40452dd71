package domain

import "context"

// UserStats holds user counts by role.
type UserStats struct {
	Total   int `json:"total"`
	Admins  int `json:"admins"`
	Players int `json:"players"`
}

// SessionStats holds session counts by lifecycle status. Completed is counted
// even though no transition into it exists.
type SessionStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

// SportSessionCount is the per-sport session tally for dashboards.
type SportSessionCount struct {
	SportID      string `json:"sport_id"`
	Name         string `json:"name"`
	SessionCount int    `json:"session_count"`
}

// AdminDashboard is the admin landing view aggregation.
type AdminDashboard struct {
	Users           UserStats            `json:"users"`
	Sessions        SessionStats         `json:"sessions"`
	SportCount      int                  `json:"sport_count"`
	PendingRequests []*JoinRequestDetail `json:"pending_requests"`
	RecentSessions  []*SessionWithSport  `json:"recent_sessions"`
	SportStats      []*SportSessionCount `json:"sport_stats"`
}

// PlayerDashboard is the player landing view: a handful of upcoming sessions
// plus the player's own requests.
type PlayerDashboard struct {
	Available  []*SessionWithSport  `json:"available"`
	MyRequests []*JoinRequestDetail `json:"my_requests"`
}

// Report is the admin reports view aggregation.
type Report struct {
	Users          UserStats            `json:"users"`
	Sessions       SessionStats         `json:"sessions"`
	SportStats     []*SportSessionCount `json:"sport_stats"`
	RecentSessions []*SessionWithSport  `json:"recent_sessions"`
}

// ReportRepository defines the read-only count queries behind dashboards and
// reports.
type ReportRepository interface {
	CountUsers(ctx context.Context) (UserStats, error)
	CountSessions(ctx context.Context) (SessionStats, error)
	CountSports(ctx context.Context) (int, error)
	CountSessionsBySport(ctx context.Context) ([]*SportSessionCount, error)
}

// ReportService defines the dashboard and report aggregations. Pure read
// projections; no side effects.
type ReportService interface {
	AdminDashboard(ctx context.Context, actor Actor) (*AdminDashboard, error)
	PlayerDashboard(ctx context.Context, actor Actor) (*PlayerDashboard, error)
	Report(ctx context.Context, actor Actor) (*Report, error)
}
