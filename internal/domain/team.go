package domain

import "time"

// Team is a named roster of employees.
type Team struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	CreatedBy   *int64
	UpdatedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamSummary is a team row with its member count for listings.
type TeamSummary struct {
	Team
	MemberCount int64
}

// TeamMember is one membership row in the team/employee join table.
type TeamMember struct {
	ID         int64
	TeamID     int64
	EmployeeID int64
	AddedBy    *int64
	CreatedAt  time.Time

	// joined employee columns for roster views
	EmployeeName  string
	EmployeeCode  string
	EmployeeEmail string
	EmployeeRole  Role
}
