package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"receiptly/internal/llm"

	"go.uber.org/zap"
)

var (
	// ErrNoFile means the request carried no uploaded file part.
	ErrNoFile = errors.New("no file provided")

	// ErrFileTooLarge means the upload exceeds the configured byte limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrModelNotConfigured means no model provider credential is set.
	ErrModelNotConfigured = errors.New("model provider not configured")
)

// FormatError means the model responded but its text did not yield
// parseable JSON. The raw text is deliberately kept for the caller: it
// is diagnostic for prompt tuning, not sensitive.
type FormatError struct {
	Reason string
	Raw    string
}

func (e *FormatError) Error() string {
	return e.Reason
}

// ReceiptAnalyzer is the model collaborator contract.
type ReceiptAnalyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (string, error)
}

type AnalysisService struct {
	analyzer ReceiptAnalyzer
	logger   *zap.Logger
}

// NewAnalysisService accepts a nil analyzer; analysis then fails with
// ErrModelNotConfigured per request instead of crashing at startup.
func NewAnalysisService(analyzer ReceiptAnalyzer, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeReceipt submits one buffered image to the model collaborator
// and returns the parsed extraction verbatim. No field validation and
// no category enforcement: the contract is a best-effort structured
// guess, not a verified schema.
func (s *AnalysisService) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (map[string]any, error) {
	if s.analyzer == nil {
		return nil, ErrModelNotConfigured
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	text, err := s.analyzer.Analyze(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("analyzing receipt: %w", err)
	}

	candidate := llm.ExtractJSON(text)
	if candidate == "" {
		s.logger.Warn("Model response contained no JSON", zap.String("response", text))
		return nil, &FormatError{Reason: "model response contained no JSON", Raw: text}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		s.logger.Warn("Model returned invalid JSON",
			zap.Error(err),
			zap.String("response", text),
		)
		return nil, &FormatError{Reason: "model returned invalid JSON", Raw: text}
	}

	s.logger.Info("Receipt analysis completed", zap.Int("image_bytes", len(image)))
	return parsed, nil
}
