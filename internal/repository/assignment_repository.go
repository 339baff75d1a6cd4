package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// AssignmentUpdateColumns is the static allow-list for plain assignment
// edits. The workflow status and counters are deliberately absent: those
// change only through interaction recording.
var AssignmentUpdateColumns = []string{
	"priority",
	"target_date",
	"follow_up_date",
	"status_text",
}

// AssignmentFilter defines admin listing query parameters.
type AssignmentFilter struct {
	EmployeeID *int64
	Status     *domain.CallStatus
	Priority   *domain.CallPriority
	Page       PageRequest
}

// AgentQueueFilter defines the per-agent customer queue parameters.
type AgentQueueFilter struct {
	EmployeeID int64
	Search     string
	Status     *domain.CallStatus
	Priority   *domain.CallPriority
	ProjectID  *int64
	TargetFrom *time.Time
	TargetTo   *time.Time
	Page       PageRequest
}

// WorkflowUpdate captures the assignment-side half of an interaction record.
type WorkflowUpdate struct {
	Status       *domain.CallStatus
	StatusText   *string
	CalledAt     *time.Time
	FollowUpDate *time.Time
	CallDelta    int
	MessageDelta int
}

// ProjectCustomerRow is a project-scoped customer with assignment state.
type ProjectCustomerRow struct {
	CustomerID       int64   `json:"customer_id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Mobile           *string `json:"mobile"`
	Email            *string `json:"email"`
	Assigned         bool    `json:"is_assigned"`
	AssignedToID     *int64  `json:"assigned_to_id"`
	AssignedToName   *string `json:"assigned_to_name"`
	AssignmentStatus *string `json:"assignment_status"`
}

// AssignmentRepository encapsulates assignment persistence.
type AssignmentRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, int64, error)
	AgentQueue(ctx context.Context, filter AgentQueueFilter) ([]domain.Assignment, int64, error)
	UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error
	ApplyWorkflowTx(ctx context.Context, tx pgx.Tx, id int64, update WorkflowUpdate, updatedBy int64) error
	Delete(ctx context.Context, id int64) error
	ProjectEmployees(ctx context.Context, projectID int64) ([]domain.Employee, error)
	ProjectCustomers(ctx context.Context, projectID int64) ([]ProjectCustomerRow, error)
	UnassignedCustomers(ctx context.Context, projectID int64) ([]domain.Customer, error)
	CustomerExistsTx(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (customer_id, employee_id, priority, status, target_date, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, assigned_at`
	return tx.QueryRow(ctx, query,
		assignment.CustomerID,
		assignment.EmployeeID,
		assignment.Priority,
		assignment.Status,
		assignment.TargetDate,
		assignment.CreatedBy,
	).Scan(&assignment.ID, &assignment.AssignedAt)
}

const assignmentSelect = `
        SELECT a.id, a.customer_id, a.employee_id, a.priority, a.status, a.status_text,
               a.assigned_at, a.target_date, a.called_at, a.follow_up_date,
               a.call_count, a.message_count, a.updated_at,
               c.name, c.code, c.mobile, c.email,
               e.name, e.code,
               c.project_id, p.name, p.code
        FROM assignments a
        INNER JOIN customers c ON a.customer_id = c.id
        INNER JOIN employees e ON a.employee_id = e.id
        LEFT JOIN projects p ON c.project_id = p.id`

func scanAssignment(row pgx.Row, assignment *domain.Assignment) error {
	return row.Scan(
		&assignment.ID,
		&assignment.CustomerID,
		&assignment.EmployeeID,
		&assignment.Priority,
		&assignment.Status,
		&assignment.StatusText,
		&assignment.AssignedAt,
		&assignment.TargetDate,
		&assignment.CalledAt,
		&assignment.FollowUpDate,
		&assignment.CallCount,
		&assignment.MessageCount,
		&assignment.UpdatedAt,
		&assignment.CustomerName,
		&assignment.CustomerCode,
		&assignment.CustomerMobile,
		&assignment.CustomerEmail,
		&assignment.EmployeeName,
		&assignment.EmployeeCode,
		&assignment.ProjectID,
		&assignment.ProjectName,
		&assignment.ProjectCode,
	)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := assignmentSelect + ` WHERE a.id=$1`
	var assignment domain.Assignment
	if err := scanAssignment(r.pool.QueryRow(ctx, query, id), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, int64, error) {
	where := NewWhereBuilder()
	if filter.EmployeeID != nil {
		where.Equal("a.employee_id", *filter.EmployeeID)
	}
	if filter.Status != nil {
		where.Equal("a.status", *filter.Status)
	}
	if filter.Priority != nil {
		where.Equal("a.priority", *filter.Priority)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM assignments a ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`%s %s ORDER BY a.assigned_at DESC, a.id DESC LIMIT $%d OFFSET $%d`,
		assignmentSelect, where.Clause(), where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	return r.queryAssignments(ctx, dataQuery, args, total)
}

// AgentQueue orders by explicit priority rank, then nearest target date,
// then most recent assignment, then id so pagination stays deterministic.
func (r *assignmentRepository) AgentQueue(ctx context.Context, filter AgentQueueFilter) ([]domain.Assignment, int64, error) {
	where := NewWhereBuilder()
	where.Equal("a.employee_id", filter.EmployeeID)
	where.Search(filter.Search, "c.name", "c.mobile")
	if filter.Status != nil {
		where.Equal("a.status", *filter.Status)
	}
	if filter.Priority != nil {
		where.Equal("a.priority", *filter.Priority)
	}
	if filter.ProjectID != nil {
		where.Equal("c.project_id", *filter.ProjectID)
	}
	if filter.TargetFrom != nil {
		where.GreaterOrEqual("a.target_date", *filter.TargetFrom)
	}
	if filter.TargetTo != nil {
		where.LessOrEqual("a.target_date", *filter.TargetTo)
	}

	var total int64
	countQuery := `
        SELECT COUNT(*)
        FROM assignments a
        INNER JOIN customers c ON a.customer_id = c.id ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`%s %s
        ORDER BY CASE a.priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 3 END,
                 a.target_date ASC NULLS LAST,
                 a.assigned_at DESC,
                 a.id DESC
        LIMIT $%d OFFSET $%d`,
		assignmentSelect, where.Clause(), where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	return r.queryAssignments(ctx, dataQuery, args, total)
}

func (r *assignmentRepository) queryAssignments(ctx context.Context, query string, args []any, total int64) ([]domain.Assignment, int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		if err := scanAssignment(rows, &assignment); err != nil {
			return nil, 0, err
		}
		result = append(result, assignment)
	}
	return result, total, rows.Err()
}

func (r *assignmentRepository) UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("assignments", "id", id, updatedBy)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ApplyWorkflowTx writes the assignment half of an interaction record. It
// must share a transaction with the call_history insert.
func (r *assignmentRepository) ApplyWorkflowTx(ctx context.Context, tx pgx.Tx, id int64, update WorkflowUpdate, updatedBy int64) error {
	const query = `
        UPDATE assignments SET
            status = COALESCE($1, status),
            status_text = COALESCE($2, status_text),
            called_at = COALESCE($3, called_at),
            follow_up_date = COALESCE($4, follow_up_date),
            call_count = call_count + $5,
            message_count = message_count + $6,
            updated_by = $7,
            updated_at = NOW()
        WHERE id=$8`
	cmd, err := tx.Exec(ctx, query,
		update.Status,
		update.StatusText,
		update.CalledAt,
		update.FollowUpDate,
		update.CallDelta,
		update.MessageDelta,
		updatedBy,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ProjectEmployees lists active employees attached to the project either
// through its default team or through a direct project assignment.
func (r *assignmentRepository) ProjectEmployees(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	const query = `
        SELECT DISTINCT e.id, e.code, e.name, e.email, e.role, e.status
        FROM employees e
        LEFT JOIN team_members tm ON e.id = tm.employee_id
        LEFT JOIN projects p ON p.default_team_id = tm.team_id
        WHERE (p.id = $1 OR e.assigned_project_id = $1)
          AND e.status = 'Active'
        ORDER BY e.name`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Code,
			&employee.Name,
			&employee.Email,
			&employee.Role,
			&employee.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, employee)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) ProjectCustomers(ctx context.Context, projectID int64) ([]ProjectCustomerRow, error) {
	const query = `
        SELECT c.id, c.code, c.name, c.mobile, c.email,
               a.id IS NOT NULL AS is_assigned,
               a.employee_id, e.name, a.status
        FROM customers c
        LEFT JOIN assignments a ON c.id = a.customer_id
        LEFT JOIN employees e ON a.employee_id = e.id
        WHERE c.project_id = $1
        ORDER BY c.name`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProjectCustomerRow
	for rows.Next() {
		var row ProjectCustomerRow
		if err := rows.Scan(
			&row.CustomerID,
			&row.Code,
			&row.Name,
			&row.Mobile,
			&row.Email,
			&row.Assigned,
			&row.AssignedToID,
			&row.AssignedToName,
			&row.AssignmentStatus,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) UnassignedCustomers(ctx context.Context, projectID int64) ([]domain.Customer, error) {
	const query = `
        SELECT c.id, c.code, c.name, c.mobile, c.email
        FROM customers c
        LEFT JOIN assignments a ON c.id = a.customer_id
        WHERE c.project_id = $1 AND a.id IS NULL
        ORDER BY c.name`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Code,
			&customer.Name,
			&customer.Mobile,
			&customer.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

// CustomerExistsTx verifies the customer row inside the bulk-assign
// transaction. Assignments must never reference customers that vanished
// between the request and the insert.
func (r *assignmentRepository) CustomerExistsTx(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id=$1)`, customerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
