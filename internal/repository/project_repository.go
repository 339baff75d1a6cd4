package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// ProjectUpdateColumns is the static allow-list for partial project updates.
var ProjectUpdateColumns = []string{
	"code",
	"name",
	"description",
	"status",
	"default_team_id",
}

// ProjectFilter defines listing query parameters.
type ProjectFilter struct {
	Search string
	Status *domain.ProjectStatus
	TeamID *int64
	Page   PageRequest
}

// ProjectRepository handles persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.ProjectSummary, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.ProjectSummary, int64, error)
	UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, id int64) (*domain.ProjectStats, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (code, name, description, status, default_team_id, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.Code,
		project.Name,
		project.Description,
		project.Status,
		project.DefaultTeamID,
		project.CreatedBy,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

const projectSummarySelect = `
        SELECT p.id, p.code, p.name, p.description, p.status, p.default_team_id,
               p.created_at, p.updated_at,
               t.name AS team_name, t.code AS team_code,
               COUNT(DISTINCT a.id) AS assignment_count
        FROM projects p
        LEFT JOIN teams t ON p.default_team_id = t.id
        LEFT JOIN customers c ON c.project_id = p.id
        LEFT JOIN assignments a ON a.customer_id = c.id`

const projectSummaryGroup = ` GROUP BY p.id, t.name, t.code`

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.ProjectSummary, error) {
	query := projectSummarySelect + ` WHERE p.id=$1` + projectSummaryGroup
	var summary domain.ProjectSummary
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&summary.ID,
		&summary.Code,
		&summary.Name,
		&summary.Description,
		&summary.Status,
		&summary.DefaultTeamID,
		&summary.CreatedAt,
		&summary.UpdatedAt,
		&summary.TeamName,
		&summary.TeamCode,
		&summary.AssignmentCount,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.ProjectSummary, int64, error) {
	where := NewWhereBuilder()
	where.Search(filter.Search, "p.name", "p.code")
	if filter.Status != nil {
		where.Equal("p.status", *filter.Status)
	}
	if filter.TeamID != nil {
		where.Equal("p.default_team_id", *filter.TeamID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM projects p ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`%s %s%s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		projectSummarySelect, where.Clause(), projectSummaryGroup,
		where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.ProjectSummary
	for rows.Next() {
		var summary domain.ProjectSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Code,
			&summary.Name,
			&summary.Description,
			&summary.Status,
			&summary.DefaultTeamID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.TeamName,
			&summary.TeamCode,
			&summary.AssignmentCount,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, summary)
	}
	return result, total, rows.Err()
}

func (r *projectRepository) UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("projects", "id", id, updatedBy)
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

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Stats(ctx context.Context, id int64) (*domain.ProjectStats, error) {
	const query = `
        SELECT COUNT(a.id) AS total_assignments,
               COUNT(a.id) FILTER (WHERE a.status = 'Pending') AS pending_assignments,
               COUNT(a.id) FILTER (WHERE a.status = 'Sales Generated') AS sales_generated,
               COUNT(DISTINCT a.employee_id) AS unique_employees
        FROM customers c
        LEFT JOIN assignments a ON a.customer_id = c.id
        WHERE c.project_id = $1`
	var stats domain.ProjectStats
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&stats.TotalAssignments,
		&stats.PendingAssignments,
		&stats.SalesGenerated,
		&stats.UniqueEmployees,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *projectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
