package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricegrid/backend/internal/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strp(s string) *string { return &s }

func sampleTable() *domain.ComparisonTable {
	return &domain.ComparisonTable{
		Catalogs: []string{"Shoprite", "Pick n Pay"},
		Rows: []domain.ComparisonRow{
			{
				ProductName: "Beef Pie 500g",
				Brand:       strp("Sea Harvest"),
				Size:        strp("500g"),
				Offers: map[string]domain.CatalogOffer{
					"Shoprite":   {Price: dec("89.99"), URL: strp("https://a.example/1")},
					"Pick n Pay": {Price: dec("92.5"), PricePerUnit: dec("18.5")},
				},
			},
		},
		Stats: map[string]domain.CatalogStats{
			"Shoprite":   {Matched: 1, MeanPrice: dec("89.99"), MinPrice: dec("89.99"), MaxPrice: dec("89.99")},
			"Pick n Pay": {Matched: 0},
		},
		GeneratedAt: time.Now(),
	}
}

func TestExportTable(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.ExportTable(sampleTable())
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"product_name", "brand", "size",
		"shoprite_price", "shoprite_price_per_unit", "shoprite_url",
		"pick_n_pay_price", "pick_n_pay_price_per_unit", "pick_n_pay_url",
	}, rows[0])

	assert.Equal(t, []string{
		"Beef Pie 500g", "Sea Harvest", "500g",
		"89.99", "", "https://a.example/1",
		"92.50", "18.50", "",
	}, rows[1])
}

func TestExportStats(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.ExportStats(sampleTable())
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Shoprite", "1", "89.99", "89.99", "89.99"}, rows[1])
	// Zero matched rows report "no data", never zeros.
	assert.Equal(t, []string{"Pick n Pay", "0", "no data", "no data", "no data"}, rows[2])
}

func TestWriteRawRecords(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteRawRecords("Pick n Pay", []domain.RawProductRecord{
		{domain.FieldProductName: "Beef Pie", domain.FieldPrice: "89.99"},
	})
	require.NoError(t, err)
	assert.Contains(t, path, "pick_n_pay_raw.csv")

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Beef Pie", rows[1][0])
	assert.Equal(t, "89.99", rows[1][2])
}
