package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiAnalyzer submits receipt images to Google Gemini together with
// the fixed extraction prompt and returns the raw model text.
type GeminiAnalyzer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiAnalyzer{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Analyze sends one request containing the image bytes inline with their
// declared media type and returns the concatenated text response.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (string, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(receiptPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	g.logger.Debug("Gemini response received", zap.Int("length", text.Len()))
	return text.String(), nil
}

// Close releases the underlying client.
func (g *GeminiAnalyzer) Close() error {
	return g.client.Close()
}
