// Package export persists comparison tables and raw catalog snapshots as
// CSV files. The per-catalog column triples are derived from the table's
// own catalog list, since the catalog set varies per run.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pricegrid/backend/internal/domain"
)

// rawColumns is the fixed header for raw catalog snapshots, in the order the
// crawler contract defines them. The retailer column is implied by the
// filename and not repeated.
var rawColumns = []string{
	domain.FieldProductName,
	domain.FieldBrand,
	domain.FieldPrice,
	domain.FieldPricePerUnit,
	domain.FieldSize,
	domain.FieldUnit,
	domain.FieldBarcode,
	domain.FieldProductURL,
	domain.FieldCategory,
	domain.FieldDescription,
}

// Writer writes pipeline outputs to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// ExportTable writes the comparison table to price_comparison.csv.
// Columns: product_name, brand, size, then a {catalog}_price,
// {catalog}_price_per_unit, {catalog}_url triple per catalog in table order.
// Absent values stay empty cells.
func (w *Writer) ExportTable(table *domain.ComparisonTable) (string, error) {
	path := filepath.Join(w.OutputDir, "price_comparison.csv")

	header := []string{"product_name", "brand", "size"}
	for _, c := range table.Catalogs {
		key := catalogKey(c)
		header = append(header, key+"_price", key+"_price_per_unit", key+"_url")
	}

	rows := [][]string{header}
	for _, row := range table.Rows {
		record := []string{row.ProductName, strOrEmpty(row.Brand), strOrEmpty(row.Size)}
		for _, c := range table.Catalogs {
			offer, ok := row.Offers[c]
			if !ok {
				record = append(record, "", "", "")
				continue
			}
			record = append(record,
				priceOrEmpty(offer.Price),
				priceOrEmpty(offer.PricePerUnit),
				strOrEmpty(offer.URL),
			)
		}
		rows = append(rows, record)
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// ExportStats writes the per-catalog summary to comparison_stats.csv.
// Catalogs that matched nothing report "no data" for the price columns.
func (w *Writer) ExportStats(table *domain.ComparisonTable) (string, error) {
	path := filepath.Join(w.OutputDir, "comparison_stats.csv")

	rows := [][]string{{"catalog", "matched", "mean_price", "min_price", "max_price"}}
	for _, c := range table.Catalogs {
		stats := table.Stats[c]
		if stats.Matched == 0 {
			rows = append(rows, []string{c, "0", "no data", "no data", "no data"})
			continue
		}
		rows = append(rows, []string{
			c,
			fmt.Sprintf("%d", stats.Matched),
			priceOrEmpty(stats.MeanPrice),
			priceOrEmpty(stats.MinPrice),
			priceOrEmpty(stats.MaxPrice),
		})
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRawRecords snapshots one retailer's harvested records to
// <retailer>_raw.csv so the process stage can pick them up later.
func (w *Writer) WriteRawRecords(retailer string, records []domain.RawProductRecord) (string, error) {
	name := strings.ToLower(strings.ReplaceAll(retailer, " ", "_")) + "_raw.csv"
	path := filepath.Join(w.OutputDir, name)

	rows := [][]string{rawColumns}
	for _, record := range records {
		row := make([]string, len(rawColumns))
		for i, col := range rawColumns {
			if v, ok := record.Field(col); ok {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cw.Flush()
	return cw.Error()
}

// catalogKey flattens a catalog name into a column prefix.
func catalogKey(catalog string) string {
	return strings.ToLower(strings.ReplaceAll(catalog, " ", "_"))
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func priceOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
