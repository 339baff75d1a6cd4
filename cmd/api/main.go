package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/callcenter-service/internal/api/http"
	"github.com/spec-kit/callcenter-service/internal/api/http/handlers"
	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/observability"
	"github.com/spec-kit/callcenter-service/internal/persistence"
	"github.com/spec-kit/callcenter-service/internal/repository"
	"github.com/spec-kit/callcenter-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	authService := service.NewAuthService(*cfg, employeeRepo, resetRepo)
	employeeService := service.NewEmployeeService(*cfg, employeeRepo)
	projectService := service.NewProjectService(*cfg, projectRepo)
	teamService := service.NewTeamService(*cfg, teamRepo, employeeRepo)
	customerService := service.NewCustomerService(*cfg, customerRepo, projectRepo)
	assignmentService := service.NewAssignmentService(*cfg, assignmentRepo, interactionRepo,
		employeeRepo, projectRepo, service.NewTxRunner(pool))
	dashboardService := service.NewDashboardService(reportRepo, redis, logger)
	reportService := service.NewReportService(reportRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Assignments:    handlers.NewAssignmentsHandler(assignmentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
