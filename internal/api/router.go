package api

import (
	"strings"

	"receiptly/internal/api/handlers"
	"receiptly/pkg/auth"
	"receiptly/pkg/config"
	"receiptly/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// SetupRouter wires the HTTP surface. A nil exportHandler (no store
// configured) leaves the export route unregistered.
func SetupRouter(
	analyzeHandler *handlers.AnalyzeHandler,
	exportHandler *handlers.ExportHandler,
	verifier *auth.Verifier,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// Leave headroom over the upload cap so oversized files reach
		// the handler's own check instead of a transport error.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.AllowOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"hello": "world"})
	})

	app.Post("/analyze-receipt", analyzeHandler.AnalyzeReceipt)

	if exportHandler != nil {
		receipts := app.Group("/receipts", middleware.AuthMiddleware(verifier, appLogger))
		receipts.Get("/:id/export/csv", exportHandler.ExportCSV)
	}

	return app
}
