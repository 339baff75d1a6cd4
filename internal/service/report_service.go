package service

import (
	"context"

	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
)

// ReportService runs management aggregations over the contact history.
type ReportService struct {
	reports repository.ReportRepository
}

// NewReportService builds the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// AgentPerformance aggregates interaction counts per active agent.
func (s *ReportService) AgentPerformance(ctx context.Context, dateRange repository.DateRange) ([]domain.AgentPerformanceRow, error) {
	return s.reports.AgentPerformance(ctx, dateRange)
}

// ProjectPerformance aggregates interaction counts per project.
func (s *ReportService) ProjectPerformance(ctx context.Context, dateRange repository.DateRange) ([]domain.ProjectPerformanceRow, error) {
	return s.reports.ProjectPerformance(ctx, dateRange)
}

// DailyActivity buckets interactions per calendar day, newest first.
func (s *ReportService) DailyActivity(ctx context.Context, dateRange repository.DateRange, days int) ([]domain.DailyActivityRow, error) {
	return s.reports.DailyActivity(ctx, dateRange, days)
}
