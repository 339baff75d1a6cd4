package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/api/http/handlers"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Projects       *handlers.ProjectsHandler
	Teams          *handlers.TeamsHandler
	Customers      *handlers.CustomersHandler
	Assignments    *handlers.AssignmentsHandler
	Dashboard      *handlers.DashboardHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under /api except login and
// password reset requires a valid bearer token; destructive and
// administrative routes additionally require elevated roles.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	elevated := auth.RequireRole(domain.RoleAdmin, domain.RoleManager)
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	protected.Get("/auth/profile", cfg.Auth.Profile)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	employees := protected.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Post("/", adminOnly, cfg.Employees.Create)
	employees.Put("/:id", elevated, cfg.Employees.Update)
	employees.Patch("/:id/status", elevated, cfg.Employees.SetStatus)
	employees.Delete("/:id", adminOnly, cfg.Employees.Delete)

	projects := protected.Group("/projects")
	projects.Get("/", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Get("/:id/stats", cfg.Projects.Stats)
	projects.Post("/", elevated, cfg.Projects.Create)
	projects.Put("/:id", elevated, cfg.Projects.Update)
	projects.Delete("/:id", adminOnly, cfg.Projects.Delete)

	teams := protected.Group("/teams")
	teams.Get("/", cfg.Teams.List)
	teams.Get("/:id", cfg.Teams.Get)
	teams.Get("/:id/members", cfg.Teams.Members)
	teams.Get("/:id/available-employees", elevated, cfg.Teams.AvailableEmployees)
	teams.Post("/", elevated, cfg.Teams.Create)
	teams.Put("/:id", elevated, cfg.Teams.Update)
	teams.Post("/:id/members", elevated, cfg.Teams.AddMember)
	teams.Delete("/:id/members/:employeeId", elevated, cfg.Teams.RemoveMember)
	teams.Delete("/:id", adminOnly, cfg.Teams.Delete)

	customers := protected.Group("/customers")
	customers.Get("/", cfg.Customers.List)
	customers.Get("/:id", cfg.Customers.Get)
	customers.Post("/", elevated, cfg.Customers.Create)
	customers.Put("/:id", elevated, cfg.Customers.Update)
	customers.Delete("/:id", adminOnly, cfg.Customers.Delete)

	assignments := protected.Group("/assignments")
	assignments.Get("/", elevated, cfg.Assignments.List)
	assignments.Get("/my", cfg.Assignments.MyQueue)
	assignments.Get("/project/:projectId/data", elevated, cfg.Assignments.ProjectData)
	assignments.Get("/project/:projectId/unassigned", elevated, cfg.Assignments.UnassignedCustomers)
	assignments.Post("/bulk", elevated, cfg.Assignments.BulkAssign)
	assignments.Get("/:id", cfg.Assignments.Get)
	assignments.Put("/:id", elevated, cfg.Assignments.Update)
	assignments.Post("/:id/interactions", cfg.Assignments.RecordInteraction)
	assignments.Get("/:id/interactions", cfg.Assignments.History)
	assignments.Delete("/:id", adminOnly, cfg.Assignments.Delete)

	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)

	reports := protected.Group("/reports", elevated)
	reports.Get("/agent-performance", cfg.Reports.AgentPerformance)
	reports.Get("/project-performance", cfg.Reports.ProjectPerformance)
	reports.Get("/daily-activity", cfg.Reports.DailyActivity)
}
