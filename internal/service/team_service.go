package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// TeamCreateInput describes team creation.
type TeamCreateInput struct {
	Code        string
	Name        string
	Description *string
}

// TeamService coordinates teams and membership rosters.
type TeamService struct {
	teams     repository.TeamRepository
	employees repository.EmployeeRepository
	paging    config.PagingConfig
}

// NewTeamService builds the service.
func NewTeamService(cfg config.Config, teams repository.TeamRepository, employees repository.EmployeeRepository) *TeamService {
	return &TeamService{teams: teams, employees: employees, paging: cfg.Paging}
}

// List returns one page of teams with member counts.
func (s *TeamService) List(ctx context.Context, filter repository.TeamFilter) ([]domain.TeamSummary, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	teams, total, err := s.teams.List(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return teams, repository.NewPageMeta(filter.Page, total), nil
}

// Get loads one team.
func (s *TeamService) Get(ctx context.Context, id int64) (*domain.TeamSummary, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("team", nil)
		}
		return nil, err
	}
	return team, nil
}

// Create stores a new team.
func (s *TeamService) Create(ctx context.Context, input TeamCreateInput, createdBy int64) (*domain.Team, error) {
	team := &domain.Team{
		Code:        strings.TrimSpace(input.Code),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedBy:   &createdBy,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// Update applies an allow-listed partial update.
func (s *TeamService) Update(ctx context.Context, id int64, input map[string]any, updatedBy int64) (*domain.TeamSummary, error) {
	builder := repository.NewUpdateBuilder(repository.TeamUpdateColumns).Apply(input)
	if builder.FieldCount() == 0 {
		return nil, apperrors.NewValidationError("no valid fields to update", nil)
	}
	if err := s.teams.UpdatePartial(ctx, id, builder, updatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("team", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the team; membership rows cascade.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("team", nil)
		}
		return err
	}
	return nil
}

// Members lists the team roster.
func (s *TeamService) Members(ctx context.Context, teamID int64) ([]domain.TeamMember, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teams.ListMembers(ctx, teamID)
}

// AddMember attaches an active employee to the team.
func (s *TeamService) AddMember(ctx context.Context, teamID, employeeID, addedBy int64) (*domain.TeamMember, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, err
	}
	if employee.Status != domain.EmployeeStatusActive {
		return nil, apperrors.NewValidationError("employee is not active", nil)
	}

	member := &domain.TeamMember{
		TeamID:     teamID,
		EmployeeID: employeeID,
		AddedBy:    &addedBy,
	}
	if err := s.teams.AddMember(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	member.EmployeeName = employee.Name
	member.EmployeeCode = employee.Code
	member.EmployeeEmail = employee.Email
	member.EmployeeRole = employee.Role
	return member, nil
}

// RemoveMember detaches an employee from the team.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, employeeID int64) error {
	if err := s.teams.RemoveMember(ctx, teamID, employeeID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("team member", nil)
		}
		return err
	}
	return nil
}

// AvailableEmployees lists active employees who are not yet on the team.
func (s *TeamService) AvailableEmployees(ctx context.Context, teamID int64, search string, limit int) ([]domain.Employee, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teams.AvailableEmployees(ctx, teamID, search, limit)
}
