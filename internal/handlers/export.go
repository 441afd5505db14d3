package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/utils"
	"gorm.io/gorm"
)

// ExportHandler handles report export routes
type ExportHandler struct {
	DB *gorm.DB
}

// ExportJSON handles GET /api/export/json
// @Summary Export the full tracker state as JSON
// @Tags Export
// @Produce json
// @Success 200 {object} services.Snapshot
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/json [get]
func (h *ExportHandler) ExportJSON(c *fiber.Ctx) error {
	snap, err := services.ExportJSON(h.DB)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="testtrack-export.json"`)
	return c.Status(fiber.StatusOK).JSON(snap)
}

// ExportCSV handles GET /api/export/csv
// @Summary Export per-test status summary as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /export/csv [get]
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	payload, err := services.ExportCSV(h.DB)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="testtrack-report.csv"`)
	return c.Status(fiber.StatusOK).Send(payload)
}
