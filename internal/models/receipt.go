package models

import "time"

// Receipt is a stored receipt record. It is owned and mutated by the
// external store; this service only reads it. Nullable columns map to
// pointer fields.
type Receipt struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	Merchant     *string    `db:"merchant"`
	PurchaseDate *time.Time `db:"purchase_date"`
	Total        *float64   `db:"total"`
	Currency     *string    `db:"currency"`
	Category     *string    `db:"category"`
	Items        []LineItem
}

// LineItem is one purchased item on a receipt. Order within a receipt
// is preserved as returned by the store.
type LineItem struct {
	Name      string   `db:"name"`
	Quantity  *float64 `db:"quantity"`
	UnitPrice *float64 `db:"unit_price"`
}
