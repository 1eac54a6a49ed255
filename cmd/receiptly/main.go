package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"receiptly/internal/api"
	"receiptly/internal/api/handlers"
	"receiptly/internal/llm"
	"receiptly/internal/repository"
	"receiptly/internal/service"
	"receiptly/pkg/auth"
	"receiptly/pkg/config"
	"receiptly/pkg/logger"
	"receiptly/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting receiptly service")

	ctx := context.Background()

	// The export endpoint needs the store; without it the service still
	// starts and serves analysis.
	var exportHandler *handlers.ExportHandler
	if cfg.Database.URL == "" {
		appLogger.Warn("DATABASE_URL is not set, receipt export endpoint is disabled")
	} else {
		db, err := postgres.NewPool(ctx, cfg.Database.URL, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		receiptRepo := repository.NewReceiptRepository(db, appLogger)
		exportService := service.NewExportService(receiptRepo, appLogger)
		exportHandler = handlers.NewExportHandler(exportService, appLogger)
	}

	var analyzer service.ReceiptAnalyzer
	if cfg.Gemini.APIKey == "" {
		appLogger.Warn("GEMINI_API_KEY is not set, receipt analysis will fail until configured")
	} else {
		gemini, err := llm.NewGeminiAnalyzer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
		defer gemini.Close()
		analyzer = gemini
	}

	if cfg.JWT.Secret == "" {
		appLogger.Warn("JWT_SECRET is not set, export calls will fail until configured")
	}

	analysisService := service.NewAnalysisService(analyzer, appLogger)
	analyzeHandler := handlers.NewAnalyzeHandler(analysisService, cfg.Upload.MaxBytes, appLogger)
	verifier := auth.NewVerifier(cfg.JWT.Secret)

	app := api.SetupRouter(analyzeHandler, exportHandler, verifier, cfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
