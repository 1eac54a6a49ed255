package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"sort"

	"receiptly/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyzeHandler struct {
	analysis       *service.AnalysisService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewAnalyzeHandler(analysis *service.AnalysisService, maxUploadBytes int64, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysis:       analysis,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// AnalyzeReceipt accepts one uploaded receipt image and returns the
// model's structured extraction. Additional file parts are ignored.
func (h *AnalyzeHandler) AnalyzeReceipt(c *fiber.Ctx) error {
	fileHeader, err := h.uploadedFile(c)
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	result, err := h.analysis.AnalyzeReceipt(c.Context(), image, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		var formatErr *service.FormatError
		switch {
		case errors.As(err, &formatErr):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": formatErr.Reason,
				"raw":   formatErr.Raw,
			})
		case errors.Is(err, service.ErrModelNotConfigured):
			h.logger.Error("Analysis requested without a configured model credential")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server misconfigured",
			})
		default:
			h.logger.Error("Receipt analysis failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Analysis failed: " + err.Error(),
			})
		}
	}

	return c.JSON(result)
}

// uploadedFile returns the first uploaded file part, preferring the
// "file" field when present. The declared size is checked before the
// body is ever buffered.
func (h *AnalyzeHandler) uploadedFile(c *fiber.Ctx) (*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, service.ErrNoFile
	}

	fileHeader := form.File["file"]
	if len(fileHeader) == 0 {
		// Field order is not preserved by the parsed form, so fall back
		// to the first populated field by name.
		fields := make([]string, 0, len(form.File))
		for field := range form.File {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if files := form.File[field]; len(files) > 0 {
				fileHeader = files
				break
			}
		}
	}
	if len(fileHeader) == 0 {
		return nil, service.ErrNoFile
	}

	if fileHeader[0].Size > h.maxUploadBytes {
		return nil, service.ErrFileTooLarge
	}

	return fileHeader[0], nil
}
