package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// forbiddenMessage is deliberately uniform: callers cannot tell whether the
// account is missing, unprivileged, or mismatched.
const forbiddenMessage = "admin access required"

// RequireAdmin permits only principals whose stored role is admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User.Role != domain.RoleAdmin {
			return apperrors.NewForbidden(forbiddenMessage)
		}
		return c.Next()
	}
}

// RequireSelf permits only requests whose :userId path parameter matches
// the authenticated principal. Admins may act on any user.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.Role == domain.RoleAdmin {
			return c.Next()
		}
		id, err := strconv.ParseInt(c.Params(param), 10, 64)
		if err != nil || id != principal.User.ID {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}
