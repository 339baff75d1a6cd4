package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/persistence"
	"github.com/spec-kit/callcenter-service/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService serves the landing-page aggregate. Results are cached in
// Redis for a short window; any cache failure falls back to a live query.
type DashboardService struct {
	reports repository.ReportRepository
	cache   *persistence.Redis
	logger  *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(reports repository.ReportRepository, cache *persistence.Redis, logger *zap.Logger) *DashboardService {
	return &DashboardService{reports: reports, cache: cache, logger: logger}
}

// Stats returns the dashboard aggregate, preferring the cached copy.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached := s.cache.GetString(ctx, dashboardCacheKey); cached != "" {
		var stats domain.DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		s.logger.Warn("discarding unreadable dashboard cache entry")
	}

	stats, err := s.reports.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		s.cache.SetString(ctx, dashboardCacheKey, string(payload), dashboardCacheTTL)
	}
	return stats, nil
}
