package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/callcenter-service/internal/auth"
	"github.com/spec-kit/callcenter-service/internal/config"
	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// capturingEmployeeRepo renders the builder the way the real repository
// would, so tests can assert on the final SET clause and bound args.
type capturingEmployeeRepo struct {
	fakeEmployeeRepo
	builtQuery string
	builtArgs  []any
	updates    int
}

func (c *capturingEmployeeRepo) UpdatePartial(_ context.Context, id int64, builder *repository.UpdateBuilder, updatedBy int64) error {
	query, args, err := builder.Build("employees", "id", id, updatedBy)
	if err != nil {
		return err
	}
	c.builtQuery = query
	c.builtArgs = args
	c.updates++
	return nil
}

func newEmployeeTestService(repo *capturingEmployeeRepo) *EmployeeService {
	cfg := config.Config{
		Paging: config.PagingConfig{DefaultLimit: 10, MaxLimit: 100},
		Auth:   config.AuthConfig{BcryptCost: 4},
	}
	return NewEmployeeService(cfg, repo)
}

func storedEmployee(id int64) *domain.Employee {
	return &domain.Employee{
		ID:       id,
		Name:     "Dana",
		Username: "dana",
		Email:    "dana@example.com",
		Role:     domain.RoleAgent,
		Status:   domain.EmployeeStatusActive,
	}
}

func TestEmployeeUpdateDropsClientSuppliedHash(t *testing.T) {
	repo := &capturingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{
		byID: map[int64]*domain.Employee{7: storedEmployee(7)},
	}}
	svc := newEmployeeTestService(repo)

	_, err := svc.Update(context.Background(), 7, map[string]any{
		"name":          "Dana Q",
		"password_hash": "$2a$10$clientchosenhash",
	}, Actor{ID: 1, Elevated: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if strings.Contains(repo.builtQuery, "password_hash") {
		t.Errorf("query = %q, credential column must be unreachable from the request map", repo.builtQuery)
	}
	for _, arg := range repo.builtArgs {
		if arg == "$2a$10$clientchosenhash" {
			t.Error("client-supplied hash must never reach the bound args")
		}
	}
}

func TestEmployeeUpdateHashesSuppliedPassword(t *testing.T) {
	repo := &capturingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{
		byID: map[int64]*domain.Employee{7: storedEmployee(7)},
	}}
	svc := newEmployeeTestService(repo)

	_, err := svc.Update(context.Background(), 7, map[string]any{
		"password": "fresh-secret-99",
	}, Actor{ID: 1, Elevated: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !strings.Contains(repo.builtQuery, "password_hash=$1") {
		t.Fatalf("query = %q, want the hashed credential in the SET clause", repo.builtQuery)
	}
	hash, ok := repo.builtArgs[0].(string)
	if !ok || hash == "fresh-secret-99" {
		t.Fatalf("args[0] = %v, plaintext must not be stored", repo.builtArgs[0])
	}
	if err := auth.ComparePassword(hash, "fresh-secret-99"); err != nil {
		t.Errorf("stored value is not a hash of the supplied password: %v", err)
	}
}

func TestEmployeeUpdateRoleRequiresAdmin(t *testing.T) {
	repo := &capturingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{
		byID: map[int64]*domain.Employee{7: storedEmployee(7)},
	}}
	svc := newEmployeeTestService(repo)

	_, err := svc.Update(context.Background(), 7, map[string]any{
		"role": "ADMIN",
	}, Actor{ID: 2, Elevated: true, Admin: false})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 403 {
		t.Fatalf("err = %v, want a 403", err)
	}
	if repo.updates != 0 {
		t.Error("refused role change must not reach the repository")
	}
}

func TestEmployeeUpdateRoleAllowedForAdmin(t *testing.T) {
	repo := &capturingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{
		byID: map[int64]*domain.Employee{7: storedEmployee(7)},
	}}
	svc := newEmployeeTestService(repo)

	_, err := svc.Update(context.Background(), 7, map[string]any{
		"role": "MANAGER",
	}, Actor{ID: 1, Elevated: true, Admin: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(repo.builtQuery, "role=$1") {
		t.Errorf("query = %q, want the role column in the SET clause", repo.builtQuery)
	}
	if repo.builtArgs[0] != "MANAGER" {
		t.Errorf("args[0] = %v, want MANAGER", repo.builtArgs[0])
	}
}
