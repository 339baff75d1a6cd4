package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/dto"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// TeamsHandler exposes team and roster endpoints.
type TeamsHandler struct {
	service *service.TeamService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teamService *service.TeamService) *TeamsHandler {
	return &TeamsHandler{service: teamService}
}

// List GET /api/teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	filter := repository.TeamFilter{
		Search: c.Query("search"),
		Page:   pageRequest(c),
	}
	teams, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewTeamSummaryResponses(teams), meta)
}

// Get GET /api/teams/:id.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	team, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewTeamSummaryResponse(team))
}

// Create POST /api/teams.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.TeamCreateInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
	team, err := h.service.Create(c.UserContext(), input, principal.ID())
	if err != nil {
		return err
	}
	return dto.Created(c, dto.NewTeamResponse(team))
}

// Update PUT /api/teams/:id.
func (h *TeamsHandler) Update(c *fiber.Ctx) error {
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

	team, err := h.service.Update(c.UserContext(), id, input, principal.ID())
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewTeamSummaryResponse(team))
}

// Delete DELETE /api/teams/:id.
func (h *TeamsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OKMessage(c, "team deleted", nil)
}

// Members GET /api/teams/:id/members.
func (h *TeamsHandler) Members(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.service.Members(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewTeamMemberResponses(members))
}

// AddMember POST /api/teams/:id/members.
func (h *TeamsHandler) AddMember(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AddTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	member, err := h.service.AddMember(c.UserContext(), id, req.EmployeeID, principal.ID())
	if err != nil {
		return err
	}
	return dto.Created(c, dto.NewTeamMemberResponse(member))
}

// RemoveMember DELETE /api/teams/:id/members/:employeeId.
func (h *TeamsHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return err
	}
	if err := h.service.RemoveMember(c.UserContext(), id, employeeID); err != nil {
		return err
	}
	return dto.OKMessage(c, "team member removed", nil)
}

// AvailableEmployees GET /api/teams/:id/available-employees.
func (h *TeamsHandler) AvailableEmployees(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	employees, err := h.service.AvailableEmployees(c.UserContext(), id, c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewEmployeeResponses(employees))
}
