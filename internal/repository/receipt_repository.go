package repository

import (
	"context"
	"errors"

	"receiptly/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned both when the receipt does not exist and when
// it belongs to another owner; callers cannot tell the two apart.
var ErrNotFound = errors.New("receipt not found")

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// GetForOwner fetches one receipt with its line items. The owner filter
// is part of the lookup itself, never a second step.
func (r *ReceiptRepository) GetForOwner(ctx context.Context, id, ownerID string) (*models.Receipt, error) {
	query := squirrel.Select("id", "user_id", "merchant", "purchase_date", "total", "currency", "category").
		From("receipts").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var receipt models.Receipt
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&receipt.ID, &receipt.UserID, &receipt.Merchant, &receipt.PurchaseDate,
		&receipt.Total, &receipt.Currency, &receipt.Category,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.lineItems(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items

	return &receipt, nil
}

func (r *ReceiptRepository) lineItems(ctx context.Context, receiptID string) ([]models.LineItem, error) {
	query := squirrel.Select("name", "quantity", "unit_price").
		From("receipt_line_items").
		Where(squirrel.Eq{"receipt_id": receiptID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
