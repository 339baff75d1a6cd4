package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// DateRange bounds report aggregations on the interaction timestamp.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ReportRepository runs aggregation queries over the call history.
type ReportRepository interface {
	AgentPerformance(ctx context.Context, dateRange DateRange) ([]domain.AgentPerformanceRow, error)
	ProjectPerformance(ctx context.Context, dateRange DateRange) ([]domain.ProjectPerformanceRow, error)
	DailyActivity(ctx context.Context, dateRange DateRange, days int) ([]domain.DailyActivityRow, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

// joinFilter renders the date predicates appended to the call_history join.
// The fragment lands after an AND inside the join clause so unmatched
// employees/projects still appear with zero counts.
func (dr DateRange) joinFilter(args *[]any) string {
	filter := ""
	if dr.From != nil {
		*args = append(*args, *dr.From)
		filter += fmt.Sprintf(" AND ch.occurred_at >= $%d", len(*args))
	}
	if dr.To != nil {
		*args = append(*args, *dr.To)
		filter += fmt.Sprintf(" AND ch.occurred_at <= $%d", len(*args))
	}
	return filter
}

func (r *reportRepository) AgentPerformance(ctx context.Context, dateRange DateRange) ([]domain.AgentPerformanceRow, error) {
	var args []any
	filter := dateRange.joinFilter(&args)
	query := fmt.Sprintf(`
        SELECT e.id, e.name, e.code,
               COUNT(ch.id) AS total_interactions,
               COUNT(ch.id) FILTER (WHERE ch.interaction_type = 'call') AS total_calls,
               COUNT(ch.id) FILTER (WHERE ch.interaction_type = 'sms') AS total_sms,
               COUNT(ch.id) FILTER (WHERE ch.interaction_type = 'whatsapp') AS total_whatsapp,
               COUNT(ch.id) FILTER (WHERE ch.status = 'Sales Generated') AS sales_generated,
               COUNT(DISTINCT ch.customer_id) AS unique_customers_contacted
        FROM employees e
        LEFT JOIN call_history ch ON e.id = ch.employee_id%s
        WHERE e.role IN ('AGENT', 'TRAINEE') AND e.status = 'Active'
        GROUP BY e.id, e.name, e.code
        ORDER BY total_interactions DESC, e.id ASC`, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AgentPerformanceRow
	for rows.Next() {
		var row domain.AgentPerformanceRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.EmployeeCode,
			&row.TotalInteractions,
			&row.TotalCalls,
			&row.TotalSMS,
			&row.TotalWhatsApp,
			&row.SalesGenerated,
			&row.CustomersContacted,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) ProjectPerformance(ctx context.Context, dateRange DateRange) ([]domain.ProjectPerformanceRow, error) {
	var args []any
	filter := dateRange.joinFilter(&args)
	query := fmt.Sprintf(`
        SELECT p.id, p.name, p.code,
               COUNT(ch.id) AS total_interactions,
               COUNT(ch.id) FILTER (WHERE ch.status = 'Sales Generated') AS sales_generated
        FROM projects p
        LEFT JOIN customers c ON p.id = c.project_id
        LEFT JOIN call_history ch ON c.id = ch.customer_id%s
        GROUP BY p.id, p.name, p.code
        ORDER BY total_interactions DESC, p.id ASC`, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectPerformanceRow
	for rows.Next() {
		var row domain.ProjectPerformanceRow
		if err := rows.Scan(
			&row.ProjectID,
			&row.ProjectName,
			&row.ProjectCode,
			&row.TotalInteractions,
			&row.SalesGenerated,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) DailyActivity(ctx context.Context, dateRange DateRange, days int) ([]domain.DailyActivityRow, error) {
	if days <= 0 {
		days = 30
	}
	where := NewWhereBuilder()
	if dateRange.From != nil {
		where.GreaterOrEqual("ch.occurred_at", *dateRange.From)
	}
	if dateRange.To != nil {
		where.LessOrEqual("ch.occurred_at", *dateRange.To)
	}

	query := fmt.Sprintf(`
        SELECT DATE(ch.occurred_at) AS day,
               COUNT(ch.id) AS total_interactions,
               COUNT(ch.id) FILTER (WHERE ch.status = 'Sales Generated') AS sales_generated
        FROM call_history ch
        %s
        GROUP BY DATE(ch.occurred_at)
        ORDER BY day DESC
        LIMIT $%d`, where.Clause(), where.NextPlaceholder())
	args := append(where.Args(), days)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DailyActivityRow
	for rows.Next() {
		var row domain.DailyActivityRow
		if err := rows.Scan(&row.Date, &row.TotalInteractions, &row.SalesGenerated); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DashboardStats gathers the landing-page aggregate in one round trip per
// metric. Callers cache the result.
func (r *reportRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{GeneratedAt: time.Now().UTC()}

	const countsQuery = `
        SELECT (SELECT COUNT(*) FROM employees WHERE status = 'Active'),
               (SELECT COUNT(*) FROM projects WHERE status = 'OPEN'),
               (SELECT COUNT(*) FROM assignments),
               (SELECT COUNT(*) FROM assignments WHERE status = 'Pending')`
	if err := r.pool.QueryRow(ctx, countsQuery).Scan(
		&stats.ActiveEmployees,
		&stats.OpenProjects,
		&stats.TotalAssignments,
		&stats.PendingAssignments,
	); err != nil {
		return nil, err
	}

	recentQuery := assignmentSelect + ` ORDER BY a.assigned_at DESC, a.id DESC LIMIT 10`
	rows, err := r.pool.Query(ctx, recentQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var assignment domain.Assignment
		if err := scanAssignment(rows, &assignment); err != nil {
			return nil, err
		}
		stats.RecentAssignments = append(stats.RecentAssignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const distributionQuery = `
        SELECT status, COUNT(*) FROM assignments GROUP BY status ORDER BY status`
	distRows, err := r.pool.Query(ctx, distributionQuery)
	if err != nil {
		return nil, err
	}
	defer distRows.Close()
	for distRows.Next() {
		var bucket domain.StatusBucket
		if err := distRows.Scan(&bucket.Status, &bucket.Count); err != nil {
			return nil, err
		}
		stats.StatusDistribution = append(stats.StatusDistribution, bucket)
	}
	return stats, distRows.Err()
}
