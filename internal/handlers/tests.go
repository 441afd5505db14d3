package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"github.com/testtrackhq/testtrack/internal/utils"
	"gorm.io/gorm"
)

// TestsHandler handles test catalog routes
type TestsHandler struct {
	DB *gorm.DB
}

// ListTests handles GET /api/tests
// @Summary List test cases
// @Description List the test catalog, optionally filtered by category, priority, or consolidated status
// @Tags Tests
// @Produce json
// @Param category query string false "Category filter"
// @Param priority query string false "Priority filter (high, medium, low)"
// @Param status query string false "Consolidated status filter"
// @Success 200 {array} models.Test
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tests [get]
func (h *TestsHandler) ListTests(c *fiber.Ctx) error {
	filter := services.TestFilter{
		Category: c.Query("category"),
		Priority: types.Priority(c.Query("priority")),
		Status:   types.Status(c.Query("status")),
	}

	tests, err := services.ListTests(h.DB, filter)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tests)
}

// GetTest handles GET /api/tests/:id
// @Summary Get a test case
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} models.Test
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id} [get]
func (h *TestsHandler) GetTest(c *fiber.Ctx) error {
	test, err := services.GetTest(h.DB, c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(test)
}

// CreateTest handles POST /api/tests
// @Summary Create a test case
// @Tags Tests
// @Accept json
// @Produce json
// @Param body body services.TestInput true "Test definition"
// @Success 201 {object} models.Test
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tests [post]
func (h *TestsHandler) CreateTest(c *fiber.Ctx) error {
	var in services.TestInput
	if err := c.BodyParser(&in); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	test, err := services.CreateTest(h.DB, in)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(test)
}

// UpdateTest handles PUT /api/tests/:id
// @Summary Update a test case
// @Description Replace the mutable fields of a test. The id and consolidated status never change here.
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param body body services.TestInput true "Test definition"
// @Success 200 {object} models.Test
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id} [put]
func (h *TestsHandler) UpdateTest(c *fiber.Ctx) error {
	var in services.TestInput
	if err := c.BodyParser(&in); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	test, err := services.UpdateTest(h.DB, c.Params("id"), in)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(test)
}

// DeleteTest handles DELETE /api/tests/:id
// @Summary Delete a test case and its results
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id} [delete]
func (h *TestsHandler) DeleteTest(c *fiber.Ctx) error {
	if err := services.DeleteTest(h.DB, c.Params("id")); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}

// DuplicateTest handles POST /api/tests/:id/duplicate
// @Summary Duplicate a test case
// @Description Copy a test under a freshly generated id with no results and pending status
// @Tags Tests
// @Produce json
// @Param id path string true "Source test ID"
// @Success 201 {object} models.Test
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id}/duplicate [post]
func (h *TestsHandler) DuplicateTest(c *fiber.Ctx) error {
	test, err := services.DuplicateTest(h.DB, c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(test)
}

// ClearTestResults handles DELETE /api/tests/:id/results
// @Summary Clear all results for a test case
// @Description Remove every recorded result for a test and reset its status to pending
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id}/results [delete]
func (h *TestsHandler) ClearTestResults(c *fiber.Ctx) error {
	if err := services.ClearResultsForTest(h.DB, c.Params("id")); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}

// GetTestResults handles GET /api/tests/:id/results
// @Summary List results for a test case
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {array} models.TestResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tests/{id}/results [get]
func (h *TestsHandler) GetTestResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := services.GetTest(h.DB, id); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	results, err := services.ListResultsForTest(h.DB, id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}
