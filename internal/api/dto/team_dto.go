package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// CreateTeamRequest payload.
type CreateTeamRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// AddTeamMemberRequest payload.
type AddTeamMemberRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
}

// TeamResponse is the wire shape for one team.
type TeamResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMemberResponse is one roster row.
type TeamMemberResponse struct {
	ID            int64     `json:"id"`
	TeamID        int64     `json:"team_id"`
	EmployeeID    int64     `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeCode  string    `json:"employee_code"`
	EmployeeEmail string    `json:"employee_email"`
	EmployeeRole  string    `json:"employee_role"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewTeamResponse maps a bare team row.
func NewTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTeamSummaryResponse maps a decorated listing row.
func NewTeamSummaryResponse(t *domain.TeamSummary) TeamResponse {
	resp := NewTeamResponse(&t.Team)
	resp.MemberCount = t.MemberCount
	return resp
}

// NewTeamSummaryResponses maps a listing page.
func NewTeamSummaryResponses(teams []domain.TeamSummary) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, NewTeamSummaryResponse(&teams[i]))
	}
	return result
}

// NewTeamMemberResponse maps a roster row.
func NewTeamMemberResponse(m *domain.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:            m.ID,
		TeamID:        m.TeamID,
		EmployeeID:    m.EmployeeID,
		EmployeeName:  m.EmployeeName,
		EmployeeCode:  m.EmployeeCode,
		EmployeeEmail: m.EmployeeEmail,
		EmployeeRole:  string(m.EmployeeRole),
		CreatedAt:     m.CreatedAt,
	}
}

// NewTeamMemberResponses maps a roster.
func NewTeamMemberResponses(members []domain.TeamMember) []TeamMemberResponse {
	result := make([]TeamMemberResponse, 0, len(members))
	for i := range members {
		result = append(result, NewTeamMemberResponse(&members[i]))
	}
	return result
}
