package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// InteractionRepository stores the append-only contact audit trail. There is
// deliberately no update or delete method.
type InteractionRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, interaction *domain.Interaction) error
	ListByAssignment(ctx context.Context, assignmentID int64) ([]domain.Interaction, error)
}

type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository builds repository.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

func (r *interactionRepository) CreateTx(ctx context.Context, tx pgx.Tx, interaction *domain.Interaction) error {
	const query = `
        INSERT INTO call_history (assignment_id, customer_id, employee_id, interaction_type,
            occurred_at, status, status_text, follow_up_date, duration_sec, recorded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		interaction.AssignmentID,
		interaction.CustomerID,
		interaction.EmployeeID,
		interaction.Type,
		interaction.OccurredAt,
		interaction.Status,
		interaction.StatusText,
		interaction.FollowUpDate,
		interaction.DurationSec,
		interaction.RecordedBy,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]domain.Interaction, error) {
	const query = `
        SELECT ch.id, ch.assignment_id, ch.customer_id, ch.employee_id, ch.interaction_type,
               ch.occurred_at, ch.status, ch.status_text, ch.follow_up_date, ch.duration_sec,
               ch.recorded_by, ch.created_at,
               e.name, e.code
        FROM call_history ch
        LEFT JOIN employees e ON ch.employee_id = e.id
        WHERE ch.assignment_id=$1
        ORDER BY ch.occurred_at DESC, ch.id DESC`
	rows, err := r.pool.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction
		if err := rows.Scan(
			&interaction.ID,
			&interaction.AssignmentID,
			&interaction.CustomerID,
			&interaction.EmployeeID,
			&interaction.Type,
			&interaction.OccurredAt,
			&interaction.Status,
			&interaction.StatusText,
			&interaction.FollowUpDate,
			&interaction.DurationSec,
			&interaction.RecordedBy,
			&interaction.CreatedAt,
			&interaction.EmployeeName,
			&interaction.EmployeeCode,
		); err != nil {
			return nil, err
		}
		result = append(result, interaction)
	}
	return result, rows.Err()
}
