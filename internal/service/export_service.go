package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"receiptly/internal/export"
	"receiptly/internal/models"
	"receiptly/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrInvalidReceiptID means the path id failed the shape check.
	ErrInvalidReceiptID = errors.New("invalid receipt id")

	// ErrReceiptNotFound covers both a missing receipt and one owned by
	// someone else; the conflation avoids leaking existence information.
	ErrReceiptNotFound = errors.New("receipt not found")
)

// Cheap shape guard before hitting the store, not a full format check.
var receiptIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{32,36}$`)

// ReceiptStore is the store collaborator contract for exports.
type ReceiptStore interface {
	GetForOwner(ctx context.Context, id, ownerID string) (*models.Receipt, error)
}

type ExportService struct {
	receipts ReceiptStore
	logger   *zap.Logger
}

func NewExportService(receipts ReceiptStore, logger *zap.Logger) *ExportService {
	return &ExportService{
		receipts: receipts,
		logger:   logger,
	}
}

// ExportCSV fetches the subject's receipt and renders it as the fixed
// CSV document. The store query filters by id and owner in one step.
func (s *ExportService) ExportCSV(ctx context.Context, id, subject string) (string, error) {
	if !receiptIDPattern.MatchString(id) {
		return "", ErrInvalidReceiptID
	}

	receipt, err := s.receipts.GetForOwner(ctx, id, subject)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrReceiptNotFound
	}
	if err != nil {
		s.logger.Error("Receipt lookup failed",
			zap.String("receipt_id", id),
			zap.Error(err),
		)
		return "", fmt.Errorf("fetching receipt: %w", err)
	}

	return export.BuildReceiptCSV(receipt), nil
}
