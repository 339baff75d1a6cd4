package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/callcenter-service/internal/domain"
	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Employee *domain.Employee
	Role     domain.Role
}

// ID returns the caller's employee id.
func (p *Principal) ID() int64 {
	return p.Employee.ID
}

// Elevated reports whether the caller may act on assignments held by others.
func (p *Principal) Elevated() bool {
	switch domain.Role(strings.ToUpper(string(p.Role))) {
	case domain.RoleAdmin, domain.RoleManager:
		return true
	}
	return false
}

// Admin reports whether the caller holds the ADMIN role.
func (p *Principal) Admin() bool {
	return domain.Role(strings.ToUpper(string(p.Role))) == domain.RoleAdmin
}

// AuthMiddleware validates bearer tokens and loads the calling employee.
type AuthMiddleware struct {
	tokens    *TokenManager
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, employees repository.EmployeeRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, employees: employees, logger: logger}
}

// Handle enforces authentication for protected routes. Unauthorized requests
// are answered here; no handler code runs on the 401 paths.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		m.logger.Warn("token rejected",
			zap.String("reason", FailureReason(err)),
			zap.String("path", c.Path()),
		)
		return apperrors.NewUnauthorized("invalid token")
	}

	employee, err := m.employees.GetByID(c.UserContext(), claims.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}
	if employee.Status != domain.EmployeeStatusActive {
		return apperrors.NewUnauthorized("account inactive")
	}

	c.Locals(principalKey, &Principal{Employee: employee, Role: employee.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
