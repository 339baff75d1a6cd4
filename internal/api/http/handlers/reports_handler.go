package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/dto"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
)

// ReportsHandler serves management aggregations.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

func dateRangeFrom(c *fiber.Ctx) (repository.DateRange, error) {
	var dateRange repository.DateRange
	var err error
	if dateRange.From, err = optionalTimeQuery(c, "from"); err != nil {
		return dateRange, err
	}
	if dateRange.To, err = optionalTimeQuery(c, "to"); err != nil {
		return dateRange, err
	}
	return dateRange, nil
}

// AgentPerformance GET /api/reports/agent-performance.
func (h *ReportsHandler) AgentPerformance(c *fiber.Ctx) error {
	dateRange, err := dateRangeFrom(c)
	if err != nil {
		return err
	}
	rows, err := h.service.AgentPerformance(c.UserContext(), dateRange)
	if err != nil {
		return err
	}
	return dto.OK(c, rows)
}

// ProjectPerformance GET /api/reports/project-performance.
func (h *ReportsHandler) ProjectPerformance(c *fiber.Ctx) error {
	dateRange, err := dateRangeFrom(c)
	if err != nil {
		return err
	}
	rows, err := h.service.ProjectPerformance(c.UserContext(), dateRange)
	if err != nil {
		return err
	}
	return dto.OK(c, rows)
}

// DailyActivity GET /api/reports/daily-activity.
func (h *ReportsHandler) DailyActivity(c *fiber.Ctx) error {
	dateRange, err := dateRangeFrom(c)
	if err != nil {
		return err
	}
	rows, err := h.service.DailyActivity(c.UserContext(), dateRange, c.QueryInt("days", 0))
	if err != nil {
		return err
	}
	return dto.OK(c, rows)
}
