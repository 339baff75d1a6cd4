package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// DashboardStatsResponse is the landing-page aggregate.
type DashboardStatsResponse struct {
	ActiveEmployees    int64                 `json:"active_employees"`
	OpenProjects       int64                 `json:"open_projects"`
	TotalAssignments   int64                 `json:"total_assignments"`
	PendingAssignments int64                 `json:"pending_assignments"`
	RecentAssignments  []AssignmentResponse  `json:"recent_assignments"`
	StatusDistribution []domain.StatusBucket `json:"status_distribution"`
	GeneratedAt        time.Time             `json:"generated_at"`
}

// NewDashboardStatsResponse maps the aggregate.
func NewDashboardStatsResponse(stats *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		ActiveEmployees:    stats.ActiveEmployees,
		OpenProjects:       stats.OpenProjects,
		TotalAssignments:   stats.TotalAssignments,
		PendingAssignments: stats.PendingAssignments,
		RecentAssignments:  NewAssignmentResponses(stats.RecentAssignments),
		StatusDistribution: stats.StatusDistribution,
		GeneratedAt:        stats.GeneratedAt,
	}
}
