package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/persistence"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// TxRunner executes fn inside one database transaction, committing on nil
// and rolling back otherwise.
type TxRunner func(ctx context.Context, fn func(tx pgx.Tx) error) error

// NewTxRunner binds a runner to the shared pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return persistence.WithinTx(ctx, pool, fn)
	}
}

// Actor identifies the caller for ownership and privilege checks.
type Actor struct {
	ID       int64
	Elevated bool
	Admin    bool
}

// BulkAssignInput distributes customers to one employee in a single batch.
type BulkAssignInput struct {
	EmployeeID  int64
	CustomerIDs []int64
	Priority    domain.CallPriority
	TargetDate  *time.Time
}

// InteractionInput records one contact attempt against an assignment.
type InteractionInput struct {
	Type         domain.InteractionType
	Status       domain.CallStatus
	StatusText   *string
	FollowUpDate *time.Time
	DurationSec  *int
	OccurredAt   *time.Time
}

// ProjectData bundles the per-project allocation view.
type ProjectData struct {
	Employees []domain.Employee               `json:"employees"`
	Customers []repository.ProjectCustomerRow `json:"customers"`
}

// AssignmentService owns the customer allocation and contact workflow.
type AssignmentService struct {
	assignments  repository.AssignmentRepository
	interactions repository.InteractionRepository
	employees    repository.EmployeeRepository
	projects     repository.ProjectRepository
	runTx        TxRunner
	paging       config.PagingConfig
}

// NewAssignmentService builds the service.
func NewAssignmentService(
	cfg config.Config,
	assignments repository.AssignmentRepository,
	interactions repository.InteractionRepository,
	employees repository.EmployeeRepository,
	projects repository.ProjectRepository,
	runTx TxRunner,
) *AssignmentService {
	return &AssignmentService{
		assignments:  assignments,
		interactions: interactions,
		employees:    employees,
		projects:     projects,
		runTx:        runTx,
		paging:       cfg.Paging,
	}
}

// ProjectData returns the employees attached to the project alongside its
// customers with their current assignment state.
func (s *AssignmentService) ProjectData(ctx context.Context, projectID int64) (*ProjectData, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("project", nil)
	}

	employees, err := s.assignments.ProjectEmployees(ctx, projectID)
	if err != nil {
		return nil, err
	}
	customers, err := s.assignments.ProjectCustomers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ProjectData{Employees: employees, Customers: customers}, nil
}

// UnassignedCustomers lists customers of the project with no assignment yet.
func (s *AssignmentService) UnassignedCustomers(ctx context.Context, projectID int64) ([]domain.Customer, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("project", nil)
	}
	return s.assignments.UnassignedCustomers(ctx, projectID)
}

// BulkAssign hands a batch of customers to one employee. All rows are
// written in a single transaction so a missing customer aborts the whole
// batch instead of leaving a partial allocation.
func (s *AssignmentService) BulkAssign(ctx context.Context, input BulkAssignInput, actor Actor) ([]domain.Assignment, error) {
	if len(input.CustomerIDs) == 0 {
		return nil, apperrors.NewValidationError("no customers to assign", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.CallPriorityMedium
	}
	if !domain.ValidCallPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", nil)
	}

	employee, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, err
	}
	if employee.Status != domain.EmployeeStatusActive {
		return nil, apperrors.NewValidationError("employee is not active", nil)
	}

	created := make([]domain.Assignment, 0, len(input.CustomerIDs))
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		for _, customerID := range input.CustomerIDs {
			exists, err := s.assignments.CustomerExistsTx(ctx, tx, customerID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewValidationError(
					fmt.Sprintf("customer %d does not exist", customerID), nil)
			}

			assignment := domain.Assignment{
				CustomerID: customerID,
				EmployeeID: input.EmployeeID,
				Priority:   priority,
				Status:     domain.CallStatusPending,
				TargetDate: input.TargetDate,
				CreatedBy:  &actor.ID,
			}
			if err := s.assignments.CreateTx(ctx, tx, &assignment); err != nil {
				return err
			}
			created = append(created, assignment)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return created, nil
}

// List returns one admin-facing page of assignments.
func (s *AssignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	assignments, total, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return assignments, repository.NewPageMeta(filter.Page, total), nil
}

// MyQueue returns the caller's working queue ordered by priority rank and
// nearest target date.
func (s *AssignmentService) MyQueue(ctx context.Context, filter repository.AgentQueueFilter) ([]domain.Assignment, repository.PageMeta, error) {
	filter.Page = filter.Page.Normalize(s.paging.DefaultLimit, s.paging.MaxLimit)
	assignments, total, err := s.assignments.AgentQueue(ctx, filter)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}
	return assignments, repository.NewPageMeta(filter.Page, total), nil
}

// Get loads one assignment.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("assignment", nil)
		}
		return nil, err
	}
	return assignment, nil
}

// Update edits non-workflow fields through the allow-listed builder. Status
// and counters are not reachable here; they move only via RecordInteraction.
func (s *AssignmentService) Update(ctx context.Context, id int64, input map[string]any, updatedBy int64) (*domain.Assignment, error) {
	if raw, ok := input["priority"]; ok {
		priority, _ := raw.(string)
		if !domain.ValidCallPriority(domain.CallPriority(priority)) {
			return nil, apperrors.NewValidationError("invalid priority", nil)
		}
	}
	builder := repository.NewUpdateBuilder(repository.AssignmentUpdateColumns).Apply(input)
	if builder.FieldCount() == 0 {
		return nil, apperrors.NewValidationError("no valid fields to update", nil)
	}
	if err := s.assignments.UpdatePartial(ctx, id, builder, updatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("assignment", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// RecordInteraction appends one contact attempt and advances the workflow.
// The status update and the history insert share a transaction: neither
// persists without the other. Only the holding employee or an elevated role
// may record, and a refused call leaves the row untouched.
func (s *AssignmentService) RecordInteraction(ctx context.Context, assignmentID int64, input InteractionInput, actor Actor) (*domain.Interaction, *domain.Assignment, error) {
	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if assignment.EmployeeID != actor.ID && !actor.Elevated {
		return nil, nil, apperrors.NewForbidden("assignment belongs to another employee")
	}

	if !domain.ValidInteractionType(input.Type) {
		return nil, nil, apperrors.NewValidationError("invalid interaction type", nil)
	}
	if !domain.ValidCallStatus(input.Status) {
		return nil, nil, apperrors.NewValidationError("invalid status", nil)
	}
	if !domain.CanTransition(assignment.Status, input.Status) {
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot move assignment from %s to %s", assignment.Status, input.Status), nil)
	}
	if input.Status == domain.CallStatusFollowUpScheduled && input.FollowUpDate == nil {
		return nil, nil, apperrors.NewValidationError("follow_up_date is required when scheduling a follow-up", nil)
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	status := input.Status
	update := repository.WorkflowUpdate{
		Status:       &status,
		StatusText:   input.StatusText,
		FollowUpDate: input.FollowUpDate,
	}
	if input.Type == domain.InteractionTypeCall {
		update.CalledAt = &occurredAt
		update.CallDelta = 1
	} else {
		update.MessageDelta = 1
	}

	interaction := &domain.Interaction{
		AssignmentID: assignment.ID,
		CustomerID:   assignment.CustomerID,
		EmployeeID:   assignment.EmployeeID,
		Type:         input.Type,
		OccurredAt:   occurredAt,
		Status:       input.Status,
		StatusText:   input.StatusText,
		FollowUpDate: input.FollowUpDate,
		DurationSec:  input.DurationSec,
		RecordedBy:   actor.ID,
	}

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		if err := s.assignments.ApplyWorkflowTx(ctx, tx, assignment.ID, update, actor.ID); err != nil {
			return err
		}
		return s.interactions.CreateTx(ctx, tx, interaction)
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("assignment", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}

	refreshed, err := s.Get(ctx, assignment.ID)
	if err != nil {
		return nil, nil, err
	}
	return interaction, refreshed, nil
}

// History lists the immutable contact trail for one assignment.
func (s *AssignmentService) History(ctx context.Context, assignmentID int64) ([]domain.Interaction, error) {
	if _, err := s.Get(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.interactions.ListByAssignment(ctx, assignmentID)
}

// Delete removes the assignment and cascades its history.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("assignment", nil)
		}
		return err
	}
	return nil
}
