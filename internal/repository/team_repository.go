package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// TeamUpdateColumns is the static allow-list for partial team updates.
var TeamUpdateColumns = []string{
	"code",
	"name",
	"description",
}

// TeamFilter defines listing query parameters.
type TeamFilter struct {
	Search string
	Page   PageRequest
}

// TeamRepository manages persistence for teams and their rosters.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int64) (*domain.TeamSummary, error)
	List(ctx context.Context, filter TeamFilter) ([]domain.TeamSummary, int64, error)
	UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error
	Delete(ctx context.Context, id int64) error
	ListMembers(ctx context.Context, teamID int64) ([]domain.TeamMember, error)
	AddMember(ctx context.Context, member *domain.TeamMember) error
	RemoveMember(ctx context.Context, teamID, employeeID int64) error
	AvailableEmployees(ctx context.Context, teamID int64, search string, limit int) ([]domain.Employee, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (code, name, description, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		team.Code,
		team.Name,
		team.Description,
		team.CreatedBy,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

const teamSummarySelect = `
        SELECT t.id, t.code, t.name, t.description, t.created_at, t.updated_at,
               COUNT(tm.id) AS member_count
        FROM teams t
        LEFT JOIN team_members tm ON tm.team_id = t.id`

const teamSummaryGroup = ` GROUP BY t.id`

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*domain.TeamSummary, error) {
	query := teamSummarySelect + ` WHERE t.id=$1` + teamSummaryGroup
	var summary domain.TeamSummary
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&summary.ID,
		&summary.Code,
		&summary.Name,
		&summary.Description,
		&summary.CreatedAt,
		&summary.UpdatedAt,
		&summary.MemberCount,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *teamRepository) List(ctx context.Context, filter TeamFilter) ([]domain.TeamSummary, int64, error) {
	where := NewWhereBuilder()
	where.Search(filter.Search, "t.name", "t.code")

	var total int64
	countQuery := `SELECT COUNT(*) FROM teams t ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`%s %s%s ORDER BY t.created_at DESC, t.id DESC LIMIT $%d OFFSET $%d`,
		teamSummarySelect, where.Clause(), teamSummaryGroup,
		where.NextPlaceholder(), where.NextPlaceholder()+1)
	args := append(where.Args(), filter.Page.Limit, filter.Page.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.TeamSummary
	for rows.Next() {
		var summary domain.TeamSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Code,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.MemberCount,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, summary)
	}
	return result, total, rows.Err()
}

func (r *teamRepository) UpdatePartial(ctx context.Context, id int64, builder *UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("teams", "id", id, updatedBy)
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

// Delete removes the team; membership rows cascade in the schema.
func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID int64) ([]domain.TeamMember, error) {
	const query = `
        SELECT tm.id, tm.team_id, tm.employee_id, tm.added_by, tm.created_at,
               e.name, e.code, e.email, e.role
        FROM team_members tm
        INNER JOIN employees e ON tm.employee_id = e.id
        WHERE tm.team_id=$1
        ORDER BY e.name ASC`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TeamMember
	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.EmployeeID,
			&member.AddedBy,
			&member.CreatedAt,
			&member.EmployeeName,
			&member.EmployeeCode,
			&member.EmployeeEmail,
			&member.EmployeeRole,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *teamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	const query = `
        INSERT INTO team_members (team_id, employee_id, added_by)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		member.TeamID,
		member.EmployeeID,
		member.AddedBy,
	).Scan(&member.ID, &member.CreatedAt)
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, employeeID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE team_id=$1 AND employee_id=$2`, teamID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AvailableEmployees lists active employees not yet on the team, capped.
func (r *teamRepository) AvailableEmployees(ctx context.Context, teamID int64, search string, limit int) ([]domain.Employee, error) {
	query := `
        SELECT e.id, e.code, e.name, e.email, e.role, e.status
        FROM employees e
        WHERE e.status=$1
          AND e.id NOT IN (SELECT tm.employee_id FROM team_members tm WHERE tm.team_id=$2)`
	args := []any{domain.EmployeeStatusActive, teamID}

	if term := strings.TrimSpace(search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		query += fmt.Sprintf(`
          AND (LOWER(e.name) LIKE $%d OR LOWER(e.email) LIKE $%d OR LOWER(e.code) LIKE $%d)`,
			len(args), len(args), len(args))
	}
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY e.name ASC LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
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
