package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

type stubEmployeeRepo struct {
	byID map[int64]*domain.Employee
}

func (s *stubEmployeeRepo) Create(context.Context, *domain.Employee) error { return nil }

func (s *stubEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return e, nil
}

func (s *stubEmployeeRepo) GetByEmail(context.Context, string) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubEmployeeRepo) List(context.Context, repository.EmployeeFilter) ([]domain.Employee, int64, error) {
	return nil, 0, nil
}

func (s *stubEmployeeRepo) UpdatePartial(context.Context, int64, *repository.UpdateBuilder, int64) error {
	return nil
}

func (s *stubEmployeeRepo) UpdatePassword(context.Context, int64, string) error { return nil }

func (s *stubEmployeeRepo) SetStatus(context.Context, int64, domain.EmployeeStatus, int64) error {
	return nil
}

func (s *stubEmployeeRepo) Delete(context.Context, int64) error { return nil }

func (s *stubEmployeeRepo) EmailOrUsernameTaken(context.Context, string, string, int64) (bool, error) {
	return false, nil
}

func newTestApp(t *testing.T, employees *stubEmployeeRepo, tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		}
		return nil
	})

	middleware := NewAuthMiddleware(tm, employees, zap.NewNop())
	chain := append([]fiber.Handler{middleware.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"id": principal.ID()})
	})
	app.Get("/protected", chain...)
	return app
}

func activeAgent(id int64) *domain.Employee {
	return &domain.Employee{ID: id, Role: domain.RoleAgent, Status: domain.EmployeeStatusActive}
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	app := newTestApp(t, &stubEmployeeRepo{}, NewTokenManager("secret", 60))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareBadHeader(t *testing.T) {
	app := newTestApp(t, &stubEmployeeRepo{}, NewTokenManager("secret", 60))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	employees := &stubEmployeeRepo{byID: map[int64]*domain.Employee{7: activeAgent(7)}}
	app := newTestApp(t, employees, tm)

	token, _, err := tm.GenerateToken(activeAgent(7))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthMiddlewareInactiveAccount(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	inactive := activeAgent(7)
	inactive.Status = domain.EmployeeStatusInactive
	employees := &stubEmployeeRepo{byID: map[int64]*domain.Employee{7: inactive}}
	app := newTestApp(t, employees, tm)

	token, _, err := tm.GenerateToken(inactive)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireRoleForbidsMismatch(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	employees := &stubEmployeeRepo{byID: map[int64]*domain.Employee{7: activeAgent(7)}}
	app := newTestApp(t, employees, tm, RequireRole(domain.RoleAdmin, domain.RoleManager))

	token, _, err := tm.GenerateToken(activeAgent(7))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestRequireRoleCaseInsensitive(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	manager := &domain.Employee{ID: 3, Role: domain.Role("manager"), Status: domain.EmployeeStatusActive}
	employees := &stubEmployeeRepo{byID: map[int64]*domain.Employee{3: manager}}
	app := newTestApp(t, employees, tm, RequireRole(domain.RoleManager))

	token, _, err := tm.GenerateToken(manager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
