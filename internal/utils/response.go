package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/types"
)

// ErrorResponse sends the standard error envelope.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, string(types.KindNotFound))
}

// AppErrorResponse maps a service error kind to an HTTP status and sends the
// standard error envelope.
func AppErrorResponse(c *fiber.Ctx, err error) error {
	kind := types.KindOf(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case types.KindValidation:
		status = fiber.StatusBadRequest
	case types.KindDuplicate:
		status = fiber.StatusConflict
	case types.KindNotFound:
		status = fiber.StatusNotFound
	case types.KindReferential:
		status = fiber.StatusUnprocessableEntity
	case types.KindAuth:
		status = fiber.StatusForbidden
	}
	return ErrorResponse(c, err.Error(), status, string(kind))
}

// MutationSuccessResponse sends a success envelope for mutations with no body.
func MutationSuccessResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Success",
		"ok":           true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"affectedRows": affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}
