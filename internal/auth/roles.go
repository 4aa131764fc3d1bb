package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

// RequireAuth ensures a caller identity is present.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("Please log in to continue")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller has the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Please log in to continue")
		}
		if !principal.Role.IsAdmin() {
			return apperrors.NewForbidden("Admin access required")
		}
		return c.Next()
	}
}
