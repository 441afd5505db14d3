package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"github.com/testtrackhq/testtrack/internal/utils"
	"gorm.io/gorm"
)

// UsersHandler handles tester registry routes
type UsersHandler struct {
	DB *gorm.DB
}

// ListUsers handles GET /api/users
// @Summary List testers
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a tester
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := services.GetUser(h.DB, c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// CreateUser handles POST /api/users
// @Summary Register a tester by name
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "{\"name\": \"Alice\"}"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	user, err := services.CreateUser(h.DB, body.Name)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a tester
// @Description Remove a tester, cascade-delete their results, and recompute affected tests
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	if err := services.DeleteUser(h.DB, c.Params("id")); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}

// GetUserResults handles GET /api/users/:id/results
// @Summary List results recorded by a tester
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.TestResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/results [get]
func (h *UsersHandler) GetUserResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := services.GetUser(h.DB, id); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	results, err := services.ListResultsForUser(h.DB, id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// ResetAllUserData handles POST /api/admin/reset
// @Summary Reset all user data
// @Description Delete every tester and result and reset every test to pending. Requires X-Confirm-Reset: yes.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/reset [post]
func (h *UsersHandler) ResetAllUserData(c *fiber.Ctx) error {
	if err := services.ResetAllUserData(h.DB); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}
