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

// ProjectCreateInput describes project creation.
type ProjectCreateInput struct {
	Code          string
	Name          string
	Description   *string
	Status        domain.ProjectStatus
	DefaultTeamID *int64
}

// ProjectService coordinates project management.
type ProjectService struct {
	projects repository.ProjectRepository
	paging   config.PagingConfig
}

// NewProjectService builds the service.
func NewProjectService(cfg config.Config, projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects, paging: cfg.Paging}
}

// List returns one page of projects with listing aggregates.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.ProjectSummary, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return projects, repository.NewPageMeta(filter.Page, total), nil
}

// Get loads one project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.ProjectSummary, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}

// Create stores a new project, defaulting status to OPEN.
func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput, createdBy int64) (*domain.Project, error) {
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusOpen
	}
	project := &domain.Project{
		Code:          strings.TrimSpace(input.Code),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Status:        status,
		DefaultTeamID: input.DefaultTeamID,
		CreatedBy:     &createdBy,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Update applies an allow-listed partial update.
func (s *ProjectService) Update(ctx context.Context, id int64, input map[string]any, updatedBy int64) (*domain.ProjectSummary, error) {
	builder := repository.NewUpdateBuilder(repository.ProjectUpdateColumns).Apply(input)
	if builder.FieldCount() == 0 {
		return nil, apperrors.NewValidationError("no valid fields to update", nil)
	}
	if err := s.projects.UpdatePartial(ctx, id, builder, updatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the project.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project", nil)
		}
		return err
	}
	return nil
}

// Stats aggregates assignment state for the project.
func (s *ProjectService) Stats(ctx context.Context, id int64) (*domain.ProjectStats, error) {
	exists, err := s.projects.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("project", nil)
	}
	return s.projects.Stats(ctx, id)
}
