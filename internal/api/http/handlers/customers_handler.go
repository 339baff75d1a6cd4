package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/dto"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// CustomersHandler exposes the customer book endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// List GET /api/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Search:    c.Query("search"),
		ProjectID: optionalInt64Query(c, "project_id"),
		Page:      pageRequest(c),
	}
	customers, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dto.Page(c, dto.NewCustomerResponses(customers), meta)
}

// Get GET /api/customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewCustomerResponse(customer))
}

// Create POST /api/customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.CustomerCreateInput{
		Code:      req.Code,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Mobile:    req.Mobile,
		Email:     req.Email,
		SocialID:  req.SocialID,
		Address:   req.Address,
		Remarks:   req.Remarks,
	}
	customer, err := h.service.Create(c.UserContext(), input, principal.ID())
	if err != nil {
		return err
	}
	return dto.Created(c, dto.NewCustomerResponse(customer))
}

// Update PUT /api/customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
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

	customer, err := h.service.Update(c.UserContext(), id, input, principal.ID())
	if err != nil {
		return err
	}
	return dto.OK(c, dto.NewCustomerResponse(customer))
}

// Delete DELETE /api/customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OKMessage(c, "customer deleted", nil)
}
