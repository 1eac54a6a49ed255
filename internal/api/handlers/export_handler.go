package handlers

import (
	"errors"
	"fmt"

	"receiptly/internal/service"
	"receiptly/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExportHandler struct {
	exports *service.ExportService
	logger  *zap.Logger
}

func NewExportHandler(exports *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		logger:  logger,
	}
}

// ExportCSV streams one receipt as a CSV attachment. Runs behind the
// auth middleware, so the subject is always present in Locals.
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	subject, ok := c.Locals(middleware.SubjectKey).(string)
	if !ok || subject == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id := c.Params("id")
	document, err := h.exports.ExportCSV(c.Context(), id, subject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReceiptID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid receipt id",
			})
		case errors.Is(err, service.ErrReceiptNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		default:
			h.logger.Error("Receipt export failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to export receipt",
			})
		}
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=receipt_%s.csv", id))
	return c.SendString(document)
}
