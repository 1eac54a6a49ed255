package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"receiptly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestEscapeRoundTrip(t *testing.T) {
	// Escaping then parsing as a single CSV field yields the original.
	values := []string{
		"plain",
		"with space",
		"comma, inside",
		`quoted "word"`,
		"line\nbreak",
		`all "of, the` + "\nabove",
	}

	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			reader := csv.NewReader(strings.NewReader(Escape(value)))
			record, err := reader.Read()
			require.NoError(t, err)
			require.Len(t, record, 1)
			assert.Equal(t, value, record[0])
		})
	}
}

func TestEscapeLeavesSafeValuesAlone(t *testing.T) {
	assert.Equal(t, "Cafe", Escape("Cafe"))
	assert.Equal(t, "", Escape(""))
	assert.Equal(t, `"a,b"`, Escape("a,b"))
	assert.Equal(t, `"say ""hi"""`, Escape(`say "hi"`))

	// Only double quote, comma and newline trigger quoting.
	assert.Equal(t, "a\rb", Escape("a\rb"))
	assert.Equal(t, "tab\there", Escape("tab\there"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "", FormatAmount(nil))
	assert.Equal(t, "12.00", FormatAmount(ptr(12.0)))
	assert.Equal(t, "12.50", FormatAmount(ptr(12.5)))
	assert.Equal(t, "12.35", FormatAmount(ptr(12.345)))
	assert.Equal(t, "0.00", FormatAmount(ptr(0.0)))
	assert.Equal(t, "1234.50", FormatAmount(ptr(1234.5)))
}

func TestFormatAmountString(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"12", "12.00"},
		{"12.5", "12.50"},
		{"12.345", "12.35"},
		{"0", "0.00"},
		{"abc", ""},
		{"12x", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmountString(tc.input), "input %q", tc.input)
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "", FormatQuantity(nil))
	assert.Equal(t, "2", FormatQuantity(ptr(2.0)))
	assert.Equal(t, "1.5", FormatQuantity(ptr(1.5)))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))

	utc := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", FormatDate(&utc))

	// Time of day is discarded after conversion to UTC.
	offset := time.Date(2024, 3, 6, 1, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))
	assert.Equal(t, "2024-03-05", FormatDate(&offset))
}

func TestBuildReceiptCSVWithItems(t *testing.T) {
	receipt := &models.Receipt{
		ID:           "11111111-2222-3333-4444-555555555555",
		UserID:       "user-1",
		Merchant:     ptr("Cafe"),
		PurchaseDate: ptr(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)),
		Total:        ptr(12.5),
		Currency:     ptr("USD"),
		Category:     ptr("Food & Drink"),
		Items: []models.LineItem{
			{Name: "Espresso", Quantity: ptr(2.0), UnitPrice: ptr(3.5)},
			{Name: "Croissant", Quantity: ptr(1.0), UnitPrice: ptr(5.5)},
		},
	}

	document := BuildReceiptCSV(receipt)
	lines := strings.Split(document, "\n")

	require.Len(t, lines, 11)
	assert.Equal(t, "Merchant,Cafe", lines[0])
	assert.Equal(t, "Purchase Date,2024-03-05", lines[1])
	assert.Equal(t, "Total,12.50", lines[2])
	assert.Equal(t, "Currency,USD", lines[3])
	assert.Equal(t, "Category,Food & Drink", lines[4])
	assert.Equal(t, "Receipt ID,11111111-2222-3333-4444-555555555555", lines[5])
	assert.Equal(t, "", lines[6])
	assert.Equal(t, "Items", lines[7])
	assert.Equal(t, "Name,Quantity,Price", lines[8])
	assert.Equal(t, "Espresso,2,3.50", lines[9])
	assert.Equal(t, "Croissant,1,5.50", lines[10])
}

func TestBuildReceiptCSVSparseFields(t *testing.T) {
	// Absent fields degrade to empty cells, never abort the document.
	receipt := &models.Receipt{
		ID:     "11111111-2222-3333-4444-555555555555",
		UserID: "user-1",
		Items: []models.LineItem{
			{Name: "Mystery item"},
		},
	}

	lines := strings.Split(BuildReceiptCSV(receipt), "\n")

	assert.Equal(t, "Merchant,", lines[0])
	assert.Equal(t, "Purchase Date,", lines[1])
	assert.Equal(t, "Total,", lines[2])
	assert.Equal(t, "Mystery item,,", lines[9])
}

func TestBuildReceiptCSVZeroItems(t *testing.T) {
	receipt := &models.Receipt{
		ID:       "11111111-2222-3333-4444-555555555555",
		UserID:   "user-1",
		Merchant: ptr("Cafe"),
	}

	document := BuildReceiptCSV(receipt)
	lines := strings.Split(document, "\n")

	// Header block still present, no data rows after it.
	require.Len(t, lines, 9)
	assert.Equal(t, "Items", lines[7])
	assert.Equal(t, "Name,Quantity,Price", lines[8])
	assert.True(t, strings.HasSuffix(document, "Name,Quantity,Price"))
}

func TestBuildReceiptCSVEscapesFields(t *testing.T) {
	receipt := &models.Receipt{
		ID:       "11111111-2222-3333-4444-555555555555",
		UserID:   "user-1",
		Merchant: ptr(`Joe's "Diner", Ltd`),
		Items: []models.LineItem{
			{Name: "Soup, of the day", UnitPrice: ptr(4.0)},
		},
	}

	lines := strings.Split(BuildReceiptCSV(receipt), "\n")

	assert.Equal(t, `Merchant,"Joe's ""Diner"", Ltd"`, lines[0])
	assert.Equal(t, `"Soup, of the day",,4.00`, lines[9])
}
