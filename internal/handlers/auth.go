package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"github.com/testtrackhq/testtrack/internal/utils"
)

// AuthHandler handles the shared-password session gate
type AuthHandler struct{}

// Login handles POST /api/auth/login
// @Summary Log in with the shared password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "{\"password\": \"...\"}"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	token, expires, err := services.Login(body.Password)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":        true,
		"expiresAt": expires.UTC().Format(time.RFC3339),
	})
}

// Logout handles POST /api/auth/logout
// @Summary Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
