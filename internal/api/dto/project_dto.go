package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Code          string  `json:"code" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Description   *string `json:"description"`
	Status        string  `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
	DefaultTeamID *int64  `json:"default_team_id"`
}

// ProjectResponse is the wire shape for one project.
type ProjectResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Status          string    `json:"status"`
	DefaultTeamID   *int64    `json:"default_team_id"`
	TeamName        *string   `json:"team_name,omitempty"`
	TeamCode        *string   `json:"team_code,omitempty"`
	AssignmentCount int64     `json:"assignment_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProjectResponse maps a bare project row.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Status:        string(p.Status),
		DefaultTeamID: p.DefaultTeamID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewProjectSummaryResponse maps a decorated listing row.
func NewProjectSummaryResponse(p *domain.ProjectSummary) ProjectResponse {
	resp := NewProjectResponse(&p.Project)
	resp.TeamName = p.TeamName
	resp.TeamCode = p.TeamCode
	resp.AssignmentCount = p.AssignmentCount
	return resp
}

// NewProjectSummaryResponses maps a listing page.
func NewProjectSummaryResponses(projects []domain.ProjectSummary) []ProjectResponse {
	result := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, NewProjectSummaryResponse(&projects[i]))
	}
	return result
}
