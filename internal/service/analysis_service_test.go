package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	text     string
	err      error
	gotMIME  string
	gotBytes []byte
}

func (f *fakeAnalyzer) Analyze(_ context.Context, image []byte, mimeType string) (string, error) {
	f.gotBytes = image
	f.gotMIME = mimeType
	return f.text, f.err
}

func TestAnalyzeReceiptSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{text: "```json\n{\"merchant\":\"Cafe\",\"total\":12.5,\"category\":\"Food & Drink\"}\n```"}
	svc := NewAnalysisService(analyzer, zap.NewNop())

	result, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Cafe", result["merchant"])
	assert.Equal(t, 12.5, result["total"])
	assert.Equal(t, "image/png", analyzer.gotMIME)
	assert.Equal(t, []byte("img"), analyzer.gotBytes)
}

func TestAnalyzeReceiptDefaultsMediaType(t *testing.T) {
	analyzer := &fakeAnalyzer{text: `{"merchant":null}`}
	svc := NewAnalysisService(analyzer, zap.NewNop())

	result, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "")

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", analyzer.gotMIME)
	// Nulls pass through untouched; no coercion.
	assert.Contains(t, result, "merchant")
	assert.Nil(t, result["merchant"])
}

func TestAnalyzeReceiptNotConfigured(t *testing.T) {
	svc := NewAnalysisService(nil, zap.NewNop())

	_, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "image/jpeg")

	assert.ErrorIs(t, err, ErrModelNotConfigured)
}

func TestAnalyzeReceiptProviderFailure(t *testing.T) {
	providerErr := errors.New("quota exceeded")
	svc := NewAnalysisService(&fakeAnalyzer{err: providerErr}, zap.NewNop())

	_, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "image/jpeg")

	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)

	var formatErr *FormatError
	assert.False(t, errors.As(err, &formatErr))
}

func TestAnalyzeReceiptNoJSONInResponse(t *testing.T) {
	svc := NewAnalysisService(&fakeAnalyzer{text: "I could not read this image, sorry."}, zap.NewNop())

	_, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "image/jpeg")

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "I could not read this image, sorry.", formatErr.Raw)
}

func TestAnalyzeReceiptInvalidJSONInResponse(t *testing.T) {
	svc := NewAnalysisService(&fakeAnalyzer{text: "```json\n{\"merchant\": broken\n```"}, zap.NewNop())

	_, err := svc.AnalyzeReceipt(context.Background(), []byte("img"), "image/jpeg")

	// Distinct from the no-candidate case but surfaced the same way,
	// raw text included.
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "model returned invalid JSON", formatErr.Reason)
	assert.Contains(t, formatErr.Raw, "broken")
}
