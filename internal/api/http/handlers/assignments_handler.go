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

// AssignmentsHandler exposes allocation and contact workflow endpoints.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{ID: principal.ID(), Elevated: principal.Elevated(), Admin: principal.Admin()}, nil
}

// ProjectData GET /api/assignments/project/:projectId/data.
func (h *AssignmentsHandler) ProjectData(c *fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	data, err := h.service.ProjectData(c.UserContext(), projectID)
	if err != nil {
		return err
	}
	return dto.OK(c, fiber.Map{
		"employees": dto.NewEmployeeResponses(data.Employees),
		"customers": data.Customers,
	})
}

// UnassignedCustomers GET /api/assignments/project/:projectId/unassigned.
func (h *AssignmentsHandler) UnassignedCustomers(c *fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	customers, err := h.service.UnassignedCustomers(c.UserContext(), projectID)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewCustomerResponses(customers))
}

// BulkAssign POST /api/assignments/bulk.
func (h *AssignmentsHandler) BulkAssign(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.BulkAssignInput{
		EmployeeID:  req.EmployeeID,
		CustomerIDs: req.CustomerIDs,
		Priority:    domain.CallPriority(req.Priority),
		TargetDate:  req.TargetDate,
	}
	created, err := h.service.BulkAssign(c.UserContext(), input, actor)
	if err != nil {
		return err
	}
	return dto.Created(c, fiber.Map{
		"assigned_count": len(created),
		"assignments":    dto.NewAssignmentResponses(created),
	})
}

// List GET /api/assignments.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	filter := repository.AssignmentFilter{
		EmployeeID: optionalInt64Query(c, "employee_id"),
		Page:       pageRequest(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.CallStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.CallPriority(raw)
		filter.Priority = &priority
	}

	assignments, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewAssignmentResponses(assignments), meta)
}

// Get GET /api/assignments/:id.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	assignment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewAssignmentResponse(assignment))
}

// MyQueue GET /api/assignments/my. Always scoped to the caller.
func (h *AssignmentsHandler) MyQueue(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	filter := repository.AgentQueueFilter{
		EmployeeID: actor.ID,
		Search:     c.Query("search"),
		ProjectID:  optionalInt64Query(c, "project_id"),
		Page:       pageRequest(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.CallStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.CallPriority(raw)
		filter.Priority = &priority
	}
	if filter.TargetFrom, err = optionalTimeQuery(c, "target_from"); err != nil {
		return err
	}
	if filter.TargetTo, err = optionalTimeQuery(c, "target_to"); err != nil {
		return err
	}

	assignments, meta, err := h.service.MyQueue(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewAssignmentResponses(assignments), meta)
}

// Update PUT /api/assignments/:id. Edits priority/target fields only; the
// workflow status moves exclusively through RecordInteraction.
func (h *AssignmentsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var input map[string]any
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assignment, err := h.service.Update(c.UserContext(), id, input, actor.ID)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewAssignmentResponse(assignment))
}

// RecordInteraction POST /api/assignments/:id/interactions.
func (h *AssignmentsHandler) RecordInteraction(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.RecordInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.InteractionInput{
		Type:         domain.InteractionType(req.Type),
		Status:       domain.CallStatus(req.Status),
		StatusText:   req.StatusText,
		FollowUpDate: req.FollowUpDate,
		DurationSec:  req.DurationSec,
		OccurredAt:   req.OccurredAt,
	}
	interaction, assignment, err := h.service.RecordInteraction(c.UserContext(), id, input, actor)
	if err != nil {
		return err
	}
	return dto.Created(c, fiber.Map{
		"interaction": dto.NewInteractionResponse(interaction),
		"assignment":  dto.NewAssignmentResponse(assignment),
	})
}

// History GET /api/assignments/:id/interactions.
func (h *AssignmentsHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	history, err := h.service.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewInteractionResponses(history))
}

// Delete DELETE /api/assignments/:id.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OKMessage(c, "assignment deleted", nil)
}
