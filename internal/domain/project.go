package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "OPEN"
	ProjectStatusClosed ProjectStatus = "CLOSED"
)

// Project groups customers and call work under one campaign.
type Project struct {
	ID            int64
	Code          string
	Name          string
	Description   *string
	Status        ProjectStatus
	DefaultTeamID *int64
	CreatedBy     *int64
	UpdatedBy     *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectSummary is a project row decorated with listing aggregates.
type ProjectSummary struct {
	Project
	TeamName        *string
	TeamCode        *string
	AssignmentCount int64
}

// ProjectStats aggregates assignment state for one project.
type ProjectStats struct {
	TotalAssignments   int64 `json:"total_assignments"`
	PendingAssignments int64 `json:"pending_assignments"`
	SalesGenerated     int64 `json:"sales_generated"`
	UniqueEmployees    int64 `json:"unique_employees"`
}
