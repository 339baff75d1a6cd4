package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

type fakeAssignmentRepo struct {
	byID map[int64]*domain.Assignment

	workflowApplied []repository.WorkflowUpdate
	created         []domain.Assignment
	missingCustomer int64
	workflowErr     error
}

func (f *fakeAssignmentRepo) CreateTx(_ context.Context, _ pgx.Tx, a *domain.Assignment) error {
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id int64) (*domain.Assignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssignmentRepo) List(context.Context, repository.AssignmentFilter) ([]domain.Assignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) AgentQueue(context.Context, repository.AgentQueueFilter) ([]domain.Assignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) UpdatePartial(context.Context, int64, *repository.UpdateBuilder, int64) error {
	return nil
}

func (f *fakeAssignmentRepo) ApplyWorkflowTx(_ context.Context, _ pgx.Tx, id int64, update repository.WorkflowUpdate, _ int64) error {
	if f.workflowErr != nil {
		return f.workflowErr
	}
	a, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	f.workflowApplied = append(f.workflowApplied, update)
	if update.Status != nil {
		a.Status = *update.Status
	}
	a.CallCount += update.CallDelta
	a.MessageCount += update.MessageDelta
	return nil
}

func (f *fakeAssignmentRepo) Delete(context.Context, int64) error { return nil }

func (f *fakeAssignmentRepo) ProjectEmployees(context.Context, int64) ([]domain.Employee, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ProjectCustomers(context.Context, int64) ([]repository.ProjectCustomerRow, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) UnassignedCustomers(context.Context, int64) ([]domain.Customer, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) CustomerExistsTx(_ context.Context, _ pgx.Tx, customerID int64) (bool, error) {
	return customerID != f.missingCustomer, nil
}

type fakeInteractionRepo struct {
	inserted  []domain.Interaction
	insertErr error
}

func (f *fakeInteractionRepo) CreateTx(_ context.Context, _ pgx.Tx, in *domain.Interaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	in.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *in)
	return nil
}

func (f *fakeInteractionRepo) ListByAssignment(context.Context, int64) ([]domain.Interaction, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	byID map[int64]*domain.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, *domain.Employee) error { return nil }

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(context.Context, string) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(context.Context, repository.EmployeeFilter) ([]domain.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) UpdatePartial(context.Context, int64, *repository.UpdateBuilder, int64) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(context.Context, int64, string) error { return nil }

func (f *fakeEmployeeRepo) SetStatus(context.Context, int64, domain.EmployeeStatus, int64) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(context.Context, int64) error { return nil }

func (f *fakeEmployeeRepo) EmailOrUsernameTaken(context.Context, string, string, int64) (bool, error) {
	return false, nil
}

type fakeProjectRepo struct{}

func (fakeProjectRepo) Create(context.Context, *domain.Project) error { return nil }
func (fakeProjectRepo) GetByID(context.Context, int64) (*domain.ProjectSummary, error) {
	return nil, pgx.ErrNoRows
}
func (fakeProjectRepo) List(context.Context, repository.ProjectFilter) ([]domain.ProjectSummary, int64, error) {
	return nil, 0, nil
}
func (fakeProjectRepo) UpdatePartial(context.Context, int64, *repository.UpdateBuilder, int64) error {
	return nil
}
func (fakeProjectRepo) Delete(context.Context, int64) error { return nil }
func (fakeProjectRepo) Stats(context.Context, int64) (*domain.ProjectStats, error) {
	return &domain.ProjectStats{}, nil
}
func (fakeProjectRepo) Exists(context.Context, int64) (bool, error) { return true, nil }

// recordingTxRunner mimics transactional semantics without a database: when
// fn fails the recorded side effects are rolled back by the assertions in
// each test, not by state restoration, so tests check the error path and the
// absence of the second write.
func recordingTxRunner(committed *bool) TxRunner {
	return func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		err := fn(nil)
		if err == nil && committed != nil {
			*committed = true
		}
		return err
	}
}

func newTestService(assignments *fakeAssignmentRepo, interactions *fakeInteractionRepo, committed *bool) *AssignmentService {
	cfg := config.Config{Paging: config.PagingConfig{DefaultLimit: 10, MaxLimit: 100}}
	employees := &fakeEmployeeRepo{byID: map[int64]*domain.Employee{
		5: {ID: 5, Status: domain.EmployeeStatusActive},
	}}
	return NewAssignmentService(cfg, assignments, interactions, employees, fakeProjectRepo{}, recordingTxRunner(committed))
}

func pendingAssignment(id, employeeID int64) *domain.Assignment {
	return &domain.Assignment{
		ID:         id,
		CustomerID: 100,
		EmployeeID: employeeID,
		Priority:   domain.CallPriorityMedium,
		Status:     domain.CallStatusPending,
	}
}

func TestRecordInteractionOwnershipMismatch(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	interactions := &fakeInteractionRepo{}
	svc := newTestService(assignments, interactions, nil)

	_, _, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeCall,
		Status: domain.CallStatusContacted,
	}, Actor{ID: 9, Elevated: false})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 403 {
		t.Fatalf("err = %v, want a 403", err)
	}
	if len(assignments.workflowApplied) != 0 || len(interactions.inserted) != 0 {
		t.Error("refused interaction must not mutate anything")
	}
}

func TestRecordInteractionElevatedActorAllowed(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	interactions := &fakeInteractionRepo{}
	committed := false
	svc := newTestService(assignments, interactions, &committed)

	interaction, refreshed, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeCall,
		Status: domain.CallStatusContacted,
	}, Actor{ID: 9, Elevated: true})
	if err != nil {
		t.Fatalf("RecordInteraction: %v", err)
	}
	if !committed {
		t.Error("transaction was not committed")
	}
	if interaction.RecordedBy != 9 {
		t.Errorf("RecordedBy = %d, want 9", interaction.RecordedBy)
	}
	if refreshed.Status != domain.CallStatusContacted {
		t.Errorf("status = %s, want Contacted", refreshed.Status)
	}
	if refreshed.CallCount != 1 {
		t.Errorf("call_count = %d, want 1", refreshed.CallCount)
	}
}

func TestRecordInteractionInvalidTransition(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	interactions := &fakeInteractionRepo{}
	svc := newTestService(assignments, interactions, nil)

	_, _, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeCall,
		Status: domain.CallStatusSalesGenerated,
	}, Actor{ID: 5})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
		t.Fatalf("err = %v, want a 400", err)
	}
	if len(interactions.inserted) != 0 {
		t.Error("invalid transition must not append history")
	}
}

func TestRecordInteractionFollowUpRequiresDate(t *testing.T) {
	assignment := pendingAssignment(1, 5)
	assignment.Status = domain.CallStatusContacted
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{1: assignment}}
	svc := newTestService(assignments, &fakeInteractionRepo{}, nil)

	_, _, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeCall,
		Status: domain.CallStatusFollowUpScheduled,
	}, Actor{ID: 5})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
		t.Fatalf("err = %v, want a 400", err)
	}
}

func TestRecordInteractionHistoryFailureAborts(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	interactions := &fakeInteractionRepo{insertErr: errors.New("insert failed")}
	committed := false
	svc := newTestService(assignments, interactions, &committed)

	_, _, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeSMS,
		Status: domain.CallStatusContacted,
	}, Actor{ID: 5})
	if err == nil {
		t.Fatal("expected failure to surface")
	}
	if committed {
		t.Error("failed transaction must not commit")
	}
	if len(interactions.inserted) != 0 {
		t.Error("no history row may survive a failed transaction")
	}
}

func TestRecordInteractionMessageCountsSeparately(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	interactions := &fakeInteractionRepo{}
	committed := false
	svc := newTestService(assignments, interactions, &committed)

	_, refreshed, err := svc.RecordInteraction(context.Background(), 1, InteractionInput{
		Type:   domain.InteractionTypeWhatsApp,
		Status: domain.CallStatusContacted,
	}, Actor{ID: 5})
	if err != nil {
		t.Fatalf("RecordInteraction: %v", err)
	}
	if refreshed.CallCount != 0 || refreshed.MessageCount != 1 {
		t.Errorf("counters = {calls %d, messages %d}, want {0, 1}", refreshed.CallCount, refreshed.MessageCount)
	}
	if refreshed.CalledAt != nil {
		t.Error("message interactions must not stamp called_at")
	}
}

func TestBulkAssignMissingCustomerAbortsBatch(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{}, missingCustomer: 102}
	committed := false
	svc := newTestService(assignments, &fakeInteractionRepo{}, &committed)

	_, err := svc.BulkAssign(context.Background(), BulkAssignInput{
		EmployeeID:  5,
		CustomerIDs: []int64{101, 102, 103},
	}, Actor{ID: 1, Elevated: true})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
		t.Fatalf("err = %v, want a 400", err)
	}
	if committed {
		t.Error("batch with a missing customer must not commit")
	}
}

func TestBulkAssignCreatesPendingRows(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{}}
	committed := false
	svc := newTestService(assignments, &fakeInteractionRepo{}, &committed)

	created, err := svc.BulkAssign(context.Background(), BulkAssignInput{
		EmployeeID:  5,
		CustomerIDs: []int64{101, 103},
		Priority:    domain.CallPriorityHigh,
	}, Actor{ID: 1, Elevated: true})
	if err != nil {
		t.Fatalf("BulkAssign: %v", err)
	}
	if !committed {
		t.Error("transaction was not committed")
	}
	if len(created) != 2 {
		t.Fatalf("created %d assignments, want 2", len(created))
	}
	for _, a := range created {
		if a.Status != domain.CallStatusPending {
			t.Errorf("status = %s, want Pending", a.Status)
		}
		if a.Priority != domain.CallPriorityHigh {
			t.Errorf("priority = %s, want High", a.Priority)
		}
	}
}

func TestUpdateRejectsNonAllowListedFields(t *testing.T) {
	assignments := &fakeAssignmentRepo{byID: map[int64]*domain.Assignment{
		1: pendingAssignment(1, 5),
	}}
	svc := newTestService(assignments, &fakeInteractionRepo{}, nil)

	_, err := svc.Update(context.Background(), 1, map[string]any{
		"status":     "Sales Generated",
		"call_count": 99,
	}, 1)

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
		t.Fatalf("err = %v, want a 400 (workflow fields are not plain-updatable)", err)
	}
}
