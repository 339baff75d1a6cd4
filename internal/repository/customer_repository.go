package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// CustomerUpdateColumns is the static allow-list for partial customer updates.
var CustomerUpdateColumns = []string{
	"code",
	"project_id",
	"name",
	"mobile",
	"email",
	"social_id",
	"address",
	"remarks",
}

// CustomerFilter defines listing query parameters.
type CustomerFilter struct {
	Search    string
	ProjectID *int64
	Page      PageRequest
}

// CustomerRepository handles persistence for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int64, error)
	UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error
	Delete(ctx context.Context, id int64) error
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates the repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (code, project_id, name, mobile, email, social_id, address, remarks, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		customer.Code,
		customer.ProjectID,
		customer.Name,
		customer.Mobile,
		customer.Email,
		customer.SocialID,
		customer.Address,
		customer.Remarks,
		customer.CreatedBy,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

const customerSelect = `
        SELECT c.id, c.code, c.project_id, c.name, c.mobile, c.email, c.social_id,
               c.address, c.remarks, c.created_at, c.updated_at,
               p.name AS project_name, p.code AS project_code
        FROM customers c
        LEFT JOIN projects p ON c.project_id = p.id`

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := customerSelect + ` WHERE c.id=$1`
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Code,
		&customer.ProjectID,
		&customer.Name,
		&customer.Mobile,
		&customer.Email,
		&customer.SocialID,
		&customer.Address,
		&customer.Remarks,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.ProjectName,
		&customer.ProjectCode,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int64, error) {
	where := NewWhereBuilder()
	where.Search(filter.Search, "c.name", "c.code", "c.mobile", "c.email")
	if filter.ProjectID != nil {
		where.Equal("c.project_id", *filter.ProjectID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers c ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`%s %s ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d`,
		customerSelect, where.Clause(), where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Code,
			&customer.ProjectID,
			&customer.Name,
			&customer.Mobile,
			&customer.Email,
			&customer.SocialID,
			&customer.Address,
			&customer.Remarks,
			&customer.CreatedAt,
			&customer.UpdatedAt,
			&customer.ProjectName,
			&customer.ProjectCode,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, customer)
	}
	return result, total, rows.Err()
}

func (r *customerRepository) UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("customers", "id", id, updatedBy)
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

// Delete removes the customer; assignments and call history cascade.
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
