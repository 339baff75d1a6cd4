package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// EmployeeUpdateColumns is the static allow-list for partial employee
// updates. Order fixes the order fields appear in the SET clause.
// password_hash is deliberately absent: the credential column is only
// reachable through the service, which hashes first and writes via Set.
var EmployeeUpdateColumns = []string{
	"code",
	"name",
	"username",
	"email",
	"role",
	"capacity",
	"phone",
	"address",
	"remarks",
	"status",
	"assigned_project_id",
	"join_date",
}

const employeeColumns = `
        id, code, name, username, email, password_hash, role, capacity,
        phone, address, remarks, status, assigned_project_id, join_date,
        created_at, updated_at`

// EmployeeFilter defines listing query parameters.
type EmployeeFilter struct {
	Search string
	Role   *domain.Role
	Status *domain.EmployeeStatus
	Page   PageRequest
}

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int64, error)
	UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus, updatedBy int64) error
	Delete(ctx context.Context, id int64) error
	EmailOrUsernameTaken(ctx context.Context, email, username string, excludeID int64) (bool, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (code, name, username, email, password_hash, role, capacity,
            phone, address, remarks, status, assigned_project_id, join_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		employee.Code,
		employee.Name,
		employee.Username,
		employee.Email,
		employee.PasswordHash,
		employee.Role,
		employee.Capacity,
		employee.Phone,
		employee.Address,
		employee.Remarks,
		employee.Status,
		employee.AssignedProjectID,
		employee.JoinDate,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&employee.ID,
		&employee.Code,
		&employee.Name,
		&employee.Username,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Role,
		&employee.Capacity,
		&employee.Phone,
		&employee.Address,
		&employee.Remarks,
		&employee.Status,
		&employee.AssignedProjectID,
		&employee.JoinDate,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int64, error) {
	where := NewWhereBuilder()
	where.Search(filter.Search, "name", "email", "username", "code")
	if filter.Role != nil {
		where.Equal("role", *filter.Role)
	}
	if filter.Status != nil {
		where.Equal("status", *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM employees %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		employeeColumns, where.Clause(), where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Code,
			&employee.Name,
			&employee.Username,
			&employee.Email,
			&employee.PasswordHash,
			&employee.Role,
			&employee.Capacity,
			&employee.Phone,
			&employee.Address,
			&employee.Remarks,
			&employee.Status,
			&employee.AssignedProjectID,
			&employee.JoinDate,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, employee)
	}
	return result, total, rows.Err()
}

func (r *employeeRepository) UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("employees", "id", id, updatedBy)
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

func (r *employeeRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE employees SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus, updatedBy int64) error {
	const query = `UPDATE employees SET status=$1, updated_by=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, updatedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete relies on the driver's affected-row count: zero means not found.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) EmailOrUsernameTaken(ctx context.Context, email, username string, excludeID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM employees WHERE (email=$1 OR username=$2) AND id <> $3
        )`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, email, username, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}
