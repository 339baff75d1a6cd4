package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/domain"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// RequireRole gates a route on the caller's role, compared
// case-insensitively. With no roles listed any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[strings.ToUpper(string(role))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[strings.ToUpper(string(principal.Role))]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
