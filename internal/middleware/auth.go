package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"github.com/testtrackhq/testtrack/internal/utils"
)

// AuthSession validates the shared-password session cookie on API routes.
func AuthSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(services.SessionCookieName)
		if token == "" {
			return utils.AppErrorResponse(c, types.AuthError("session cookie %q not found", services.SessionCookieName))
		}

		if err := services.ValidateSession(token); err != nil {
			return utils.AppErrorResponse(c, err)
		}

		return c.Next()
	}
}

// RequireConfirmation gates destructive bulk operations behind an explicit
// confirmation header so a stray request cannot wipe the data set.
func RequireConfirmation(header, expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(header) != expected {
			return utils.AppErrorResponse(c,
				types.ValidationError("confirmation header %s: %s is required", header, expected))
		}
		return c.Next()
	}
}
