package domain

import (
	"context"
	"time"
)

// RecordSource yields raw product records harvested from one or more
// retailers. Implementations load files or drive a scraper; the core only
// sees the resulting records.
type RecordSource interface {
	Records(ctx context.Context) ([]RawProductRecord, error)
}

// TableExporter persists a built comparison table and returns the path or
// identifier of what was written.
type TableExporter interface {
	ExportTable(table *ComparisonTable) (string, error)
	ExportStats(table *ComparisonTable) (string, error)
}

// TableCache caches built comparison tables keyed by a request digest.
type TableCache interface {
	Get(ctx context.Context, key string) (*ComparisonTable, error)
	Set(ctx context.Context, key string, table *ComparisonTable, ttl time.Duration) error
}
