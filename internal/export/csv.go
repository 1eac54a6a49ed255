package export

import (
	"strconv"
	"strings"
	"time"

	"receiptly/internal/models"

	"github.com/shopspring/decimal"
)

// Escape makes a value safe as a single CSV field: if it contains a
// double quote, comma or newline the whole value is wrapped in double
// quotes with internal quotes doubled. No other characters are touched.
func Escape(value string) string {
	if strings.ContainsAny(value, "\",\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// FormatAmount renders a monetary value with exactly two fractional
// digits, no separators, no symbol. Absent values become the empty string.
func FormatAmount(value *float64) string {
	if value == nil {
		return ""
	}
	return decimal.NewFromFloat(*value).StringFixed(2)
}

// FormatAmountString is the string-input counterpart of FormatAmount,
// for amounts that arrive as text. Empty or unparseable input becomes
// the empty string.
func FormatAmountString(value string) string {
	if value == "" {
		return ""
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return ""
	}
	return amount.StringFixed(2)
}

// FormatQuantity renders a quantity without forcing a decimal point.
func FormatQuantity(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// FormatDate renders a calendar date as YYYY-MM-DD in UTC, discarding
// time of day. Absent values become the empty string.
func FormatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}

// BuildReceiptCSV produces the export document. It never fails: any
// absent field degrades to an empty cell. A receipt with zero items
// still yields the Items header block.
func BuildReceiptCSV(receipt *models.Receipt) string {
	lines := []string{
		"Merchant," + Escape(deref(receipt.Merchant)),
		"Purchase Date," + FormatDate(receipt.PurchaseDate),
		"Total," + FormatAmount(receipt.Total),
		"Currency," + Escape(deref(receipt.Currency)),
		"Category," + Escape(deref(receipt.Category)),
		"Receipt ID," + Escape(receipt.ID),
		"",
		"Items",
		"Name,Quantity,Price",
	}

	for _, item := range receipt.Items {
		lines = append(lines, strings.Join([]string{
			Escape(item.Name),
			FormatQuantity(item.Quantity),
			FormatAmount(item.UnitPrice),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
