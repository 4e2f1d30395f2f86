// Package catalog loads raw product records harvested by the collect stage
// from per-retailer CSV files.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pricegrid/backend/internal/domain"
)

var titleCaser = cases.Title(language.Und)

// Loader reads every <retailer>_raw*.csv file in a directory and turns the
// rows into raw product records. The retailer name is derived from the
// filename stem, so a file produced for one retailer never has to carry the
// retailer column itself.
type Loader struct {
	rawDir             string
	enableDebugLogging bool
}

// NewLoader creates a loader over the given raw-data directory.
func NewLoader(rawDir string, enableDebugLogging bool) *Loader {
	return &Loader{rawDir: rawDir, enableDebugLogging: enableDebugLogging}
}

// Records loads all raw files and pools their records. A file that fails to
// parse is logged and skipped; the batch only fails when nothing at all
// could be loaded.
func (l *Loader) Records(ctx context.Context) ([]domain.RawProductRecord, error) {
	pattern := filepath.Join(l.rawDir, "*_raw*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing raw files: %w", err)
	}

	var records []domain.RawProductRecord
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		retailer := retailerFromFilename(path)
		fileRecords, err := loadFile(path, retailer)
		if err != nil {
			log.Printf("[CATALOG] skipping %s: %v", filepath.Base(path), err)
			continue
		}

		if l.enableDebugLogging {
			log.Printf("[CATALOG] loaded %d records from %s (%s)",
				len(fileRecords), filepath.Base(path), retailer)
		}
		records = append(records, fileRecords...)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoProducts, l.rawDir)
	}
	return records, nil
}

// retailerFromFilename turns "shoprite_raw.csv" into "Shoprite".
func retailerFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.Index(stem, "_raw"); idx > 0 {
		stem = stem[:idx]
	}
	return titleCaser.String(stem)
}

// loadFile reads one CSV file. The header row supplies the field names;
// empty cells are left out of the record entirely so that absence stays
// distinguishable from an empty string downstream.
func loadFile(path, retailer string) ([]domain.RawProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	headers := rows[0]
	records := make([]domain.RawProductRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := domain.RawProductRecord{}
		for i, cell := range row {
			if i >= len(headers) || cell == "" {
				continue
			}
			record[headers[i]] = cell
		}
		// The filename is authoritative for the source catalog.
		record[domain.FieldRetailer] = retailer
		records = append(records, record)
	}

	return records, nil
}
