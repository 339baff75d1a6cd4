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

// CustomerCreateInput describes customer creation.
type CustomerCreateInput struct {
	Code      string
	ProjectID *int64
	Name      string
	Mobile    *string
	Email     *string
	SocialID  *string
	Address   *string
	Remarks   *string
}

// CustomerService coordinates the customer book.
type CustomerService struct {
	customers repository.CustomerRepository
	projects  repository.ProjectRepository
	paging    config.PagingConfig
}

// NewCustomerService builds the service.
func NewCustomerService(cfg config.Config, customers repository.CustomerRepository, projects repository.ProjectRepository) *CustomerService {
	return &CustomerService{customers: customers, projects: projects, paging: cfg.Paging}
}

// List returns one page of customers.
func (s *CustomerService) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return customers, repository.NewPageMeta(filter.Page, total), nil
}

// Get loads one customer.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, err
	}
	return customer, nil
}

// Create stores a new customer, checking any referenced project first.
func (s *CustomerService) Create(ctx context.Context, input CustomerCreateInput, createdBy int64) (*domain.Customer, error) {
	if input.ProjectID != nil {
		exists, err := s.projects.Exists(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("referenced project does not exist", nil)
		}
	}

	customer := &domain.Customer{
		Code:      strings.TrimSpace(input.Code),
		ProjectID: input.ProjectID,
		Name:      strings.TrimSpace(input.Name),
		Mobile:    input.Mobile,
		Email:     input.Email,
		SocialID:  input.SocialID,
		Address:   input.Address,
		Remarks:   input.Remarks,
		CreatedBy: &createdBy,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// Update applies an allow-listed partial update.
func (s *CustomerService) Update(ctx context.Context, id int64, input map[string]any, updatedBy int64) (*domain.Customer, error) {
	builder := repository.NewUpdateBuilder(repository.CustomerUpdateColumns).Apply(input)
	if builder.FieldCount() == 0 {
		return nil, apperrors.NewValidationError("no valid fields to update", nil)
	}
	if err := s.customers.UpdatePartial(ctx, id, builder, updatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the customer; assignments and history cascade.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("customer", nil)
		}
		return err
	}
	return nil
}
