package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/dto"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// ProjectsHandler exposes project management endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProjectFilter{
		Search: c.Query("search"),
		TeamID: optionalInt64Query(c, "team_id"),
		Page:   pageRequest(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ProjectStatus(raw)
		filter.Status = &status
	}

	projects, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewProjectSummaryResponses(projects), meta)
}

// Get GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewProjectSummaryResponse(project))
}

// Create POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.ProjectCreateInput{
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Status:        domain.ProjectStatus(req.Status),
		DefaultTeamID: req.DefaultTeamID,
	}
	project, err := h.service.Create(c.UserContext(), input, principal.ID())
	if err != nil {
		return err
	}
	return dto.Created(c, dto.NewProjectResponse(project))
}

// Update PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var input map[string]any
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.service.Update(c.UserContext(), id, input, principal.ID())
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewProjectSummaryResponse(project))
}

// Delete DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OKMessage(c, "project deleted", nil)
}

// Stats GET /api/projects/:id/stats.
func (h *ProjectsHandler) Stats(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, stats)
}
