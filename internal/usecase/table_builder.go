package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricegrid/backend/internal/domain"
)

// ComparisonTableBuilder assembles matched product groups into the final
// comparison table and computes per-catalog summary statistics.
type ComparisonTableBuilder struct{}

// NewComparisonTableBuilder creates a table builder.
func NewComparisonTableBuilder() *ComparisonTableBuilder {
	return &ComparisonTableBuilder{}
}

// Build produces one row per group, sorted by product name with a stable
// sort so equal names keep the matcher's emission order. Statistics skip
// absent prices; a catalog with zero matched rows gets nil price stats,
// which downstream renders as "no data" rather than zero.
func (b *ComparisonTableBuilder) Build(catalogs []string, groups []domain.ProductGroup) *domain.ComparisonTable {
	rows := make([]domain.ComparisonRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.ComparisonRow{
			ProductName: g.ProductName,
			Brand:       g.Brand,
			Size:        g.Size,
			Offers:      g.Offers,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProductName < rows[j].ProductName
	})

	stats := make(map[string]domain.CatalogStats, len(catalogs))
	for _, c := range catalogs {
		stats[c] = catalogStats(c, rows)
	}

	return &domain.ComparisonTable{
		Catalogs:    catalogs,
		Rows:        rows,
		Stats:       stats,
		GeneratedAt: time.Now(),
	}
}

func catalogStats(catalog string, rows []domain.ComparisonRow) domain.CatalogStats {
	var prices []decimal.Decimal
	for _, row := range rows {
		offer, ok := row.Offers[catalog]
		if !ok || offer.Price == nil {
			continue
		}
		prices = append(prices, *offer.Price)
	}

	stats := domain.CatalogStats{Matched: len(prices)}
	if len(prices) == 0 {
		return stats
	}

	minP, maxP, sum := prices[0], prices[0], decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
		if p.LessThan(minP) {
			minP = p
		}
		if p.GreaterThan(maxP) {
			maxP = p
		}
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2)
	stats.MeanPrice = &mean
	stats.MinPrice = &minP
	stats.MaxPrice = &maxP
	return stats
}
