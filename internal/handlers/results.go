package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"github.com/testtrackhq/testtrack/internal/utils"
	"gorm.io/gorm"
)

// ResultsHandler handles recorded-result routes
type ResultsHandler struct {
	DB *gorm.DB
}

// ListResults handles GET /api/results
// @Summary List all recorded results
// @Tags Results
// @Produce json
// @Success 200 {array} models.TestResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /results [get]
func (h *ResultsHandler) ListResults(c *fiber.Ctx) error {
	results, err := services.ListResults(h.DB)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// CreateResult handles POST /api/results
// @Summary Record a result
// @Description Record a tester's outcome for a test; the test's consolidated status is recomputed in the same transaction
// @Tags Results
// @Accept json
// @Produce json
// @Param body body services.ResultInput true "Result"
// @Success 201 {object} models.TestResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /results [post]
func (h *ResultsHandler) CreateResult(c *fiber.Ctx) error {
	var in services.ResultInput
	if err := c.BodyParser(&in); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	result, err := services.CreateResult(h.DB, in)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdateResult handles PUT /api/results/:id
// @Summary Edit a recorded result
// @Tags Results
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param body body services.ResultInput true "Result"
// @Success 200 {object} models.TestResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /results/{id} [put]
func (h *ResultsHandler) UpdateResult(c *fiber.Ctx) error {
	var in services.ResultInput
	if err := c.BodyParser(&in); err != nil {
		return utils.AppErrorResponse(c, types.ValidationError("invalid input"))
	}

	result, err := services.UpdateResult(h.DB, c.Params("id"), in)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// DeleteResult handles DELETE /api/results/:id
// @Summary Delete a recorded result
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /results/{id} [delete]
func (h *ResultsHandler) DeleteResult(c *fiber.Ctx) error {
	if err := services.DeleteResult(h.DB, c.Params("id")); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}
