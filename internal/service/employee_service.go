package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// EmployeeCreateInput describes the admin-only employee creation payload.
type EmployeeCreateInput struct {
	Code              string
	Name              string
	Username          string
	Email             string
	Password          string
	Role              domain.Role
	Capacity          int
	Phone             *string
	Address           *string
	Remarks           *string
	Status            domain.EmployeeStatus
	AssignedProjectID *int64
	JoinDate          *time.Time
}

// EmployeeService coordinates employee account management.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	paging     config.PagingConfig
	bcryptCost int
}

// NewEmployeeService builds the service.
func NewEmployeeService(cfg config.Config, employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employees:  employees,
		paging:     cfg.Paging,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns one page of employees plus pagination metadata.
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	employees, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return employees, repository.NewPageMeta(filter.Page, total), nil
}

// Get loads one employee.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, err
	}
	return employee, nil
}

// Create registers a new employee account with a hashed credential.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	taken, err := s.employees.EmailOrUsernameTaken(ctx, input.Email, input.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("employee already exists with this email or username", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleAgent
	}
	status := input.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}
	joinDate := time.Now()
	if input.JoinDate != nil {
		joinDate = *input.JoinDate
	}

	employee := &domain.Employee{
		Code:              strings.TrimSpace(input.Code),
		Name:              strings.TrimSpace(input.Name),
		Username:          strings.TrimSpace(input.Username),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:      hash,
		Role:              role,
		Capacity:          input.Capacity,
		Phone:             input.Phone,
		Address:           input.Address,
		Remarks:           input.Remarks,
		Status:            status,
		AssignedProjectID: input.AssignedProjectID,
		JoinDate:          joinDate,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Update applies an allow-listed partial update. The credential column is
// not on the allow-list: a supplied password is hashed here and written via
// Set, so neither a plaintext password nor a client-chosen hash can reach
// SQL. Role changes are restricted to administrators.
func (s *EmployeeService) Update(ctx context.Context, id int64, input map[string]any, actor Actor) (*domain.Employee, error) {
	if _, ok := input["role"]; ok && !actor.Admin {
		return nil, apperrors.NewForbidden("only an administrator may change roles")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if email, ok := stringField(input, "email"); ok && email != current.Email {
		username, _ := stringField(input, "username")
		if username == "" {
			username = current.Username
		}
		taken, err := s.employees.EmailOrUsernameTaken(ctx, email, username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflict("email or username already in use by another employee", nil)
		}
	}

	builder := repository.NewUpdateBuilder(repository.EmployeeUpdateColumns).Apply(input)
	if password, ok := stringField(input, "password"); ok && password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		builder.Set("password_hash", hash)
	}
	if builder.FieldCount() == 0 {
		return nil, apperrors.NewValidationError("no valid fields to update", nil)
	}

	if err := s.employees.UpdatePartial(ctx, id, builder, actor.ID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// SetStatus flips an account between Active and Inactive.
func (s *EmployeeService) SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus, updatedBy int64) (*domain.Employee, error) {
	if status != domain.EmployeeStatusActive && status != domain.EmployeeStatusInactive {
		return nil, apperrors.NewValidationError("status must be Active or Inactive", nil)
	}
	if err := s.employees.SetStatus(ctx, id, status, updatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the account; dependent assignments cascade in the schema.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("employee", nil)
		}
		return err
	}
	return nil
}

func stringField(input map[string]any, key string) (string, bool) {
	val, ok := input[key]
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}
