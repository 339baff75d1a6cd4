package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/dto"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// EmployeesHandler exposes employee administration endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		Search: c.Query("search"),
		Page:   pageRequest(c),
	}
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(strings.ToUpper(raw))
		filter.Role = &role
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EmployeeStatus(raw)
		filter.Status = &status
	}

	employees, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewEmployeeResponses(employees), meta)
}

// Get GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	employee, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewEmployeeResponse(employee))
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.EmployeeCreateInput{
		Code:              req.Code,
		Name:              req.Name,
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		Role:              domain.Role(strings.ToUpper(req.Role)),
		Capacity:          req.Capacity,
		Phone:             req.Phone,
		Address:           req.Address,
		Remarks:           req.Remarks,
		Status:            domain.EmployeeStatus(req.Status),
		AssignedProjectID: req.AssignedProjectID,
		JoinDate:          req.JoinDate,
	}
	employee, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return dto.Created(c, dto.NewEmployeeResponse(employee))
}

// Update PUT /api/employees/:id. The body is a sparse field map; only
// allow-listed columns survive into the SET clause.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
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

	employee, err := h.service.Update(c.UserContext(), id, input, actor)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewEmployeeResponse(employee))
}

// SetStatus PATCH /api/employees/:id/status.
func (h *EmployeesHandler) SetStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SetEmployeeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	employee, err := h.service.SetStatus(c.UserContext(), id, domain.EmployeeStatus(req.Status), principal.ID())
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewEmployeeResponse(employee))
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OKMessage(c, "employee deleted", nil)
}
