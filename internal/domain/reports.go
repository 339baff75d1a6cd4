package domain

import "time"

// DashboardStats is the landing-page aggregate.
type DashboardStats struct {
	ActiveEmployees    int64                `json:"active_employees"`
	OpenProjects       int64                `json:"open_projects"`
	TotalAssignments   int64                `json:"total_assignments"`
	PendingAssignments int64                `json:"pending_assignments"`
	RecentAssignments  []Assignment         `json:"recent_assignments"`
	StatusDistribution []StatusBucket       `json:"status_distribution"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// StatusBucket is one slice of the assignment status distribution.
type StatusBucket struct {
	Status CallStatus `json:"status"`
	Count  int64      `json:"count"`
}

// AgentPerformanceRow aggregates interaction activity per employee.
type AgentPerformanceRow struct {
	EmployeeID         int64  `json:"employee_id"`
	EmployeeName       string `json:"employee_name"`
	EmployeeCode       string `json:"employee_code"`
	TotalInteractions  int64  `json:"total_interactions"`
	TotalCalls         int64  `json:"total_calls"`
	TotalSMS           int64  `json:"total_sms"`
	TotalWhatsApp      int64  `json:"total_whatsapp"`
	SalesGenerated     int64  `json:"sales_generated"`
	CustomersContacted int64  `json:"unique_customers_contacted"`
}

// ProjectPerformanceRow aggregates interaction activity per project.
type ProjectPerformanceRow struct {
	ProjectID         int64  `json:"project_id"`
	ProjectName       string `json:"project_name"`
	ProjectCode       string `json:"project_code"`
	TotalInteractions int64  `json:"total_interactions"`
	SalesGenerated    int64  `json:"sales_generated"`
}

// DailyActivityRow aggregates interactions per calendar day.
type DailyActivityRow struct {
	Date              time.Time `json:"date"`
	TotalInteractions int64     `json:"total_interactions"`
	SalesGenerated    int64     `json:"sales_generated"`
}
