package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogOffer is one retailer's listing of a matched product.
type CatalogOffer struct {
	Price        *decimal.Decimal `json:"price,omitempty"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit,omitempty"`
	URL          *string          `json:"url,omitempty"`
}

// ProductGroup is a set of cross-catalog listings believed to denote one
// physical product. The canonical name, brand and size come from the
// reference catalog's member; Offers is keyed by catalog name.
// A group only survives into the comparison table when at least two
// catalogs contributed a priced offer.
type ProductGroup struct {
	ProductName string                  `json:"productName"`
	Brand       *string                 `json:"brand,omitempty"`
	Size        *string                 `json:"size,omitempty"`
	Offers      map[string]CatalogOffer `json:"offers"`
}

// PricedCatalogs counts the catalogs that contributed an offer with a price.
func (g ProductGroup) PricedCatalogs() int {
	n := 0
	for _, offer := range g.Offers {
		if offer.Price != nil {
			n++
		}
	}
	return n
}

// ComparisonRow is one line of the final table.
type ComparisonRow struct {
	ProductName string                  `json:"productName"`
	Brand       *string                 `json:"brand,omitempty"`
	Size        *string                 `json:"size,omitempty"`
	Offers      map[string]CatalogOffer `json:"offers"`
}

// CatalogStats summarizes one catalog's matched rows. The price fields are
// nil when the catalog matched nothing, which exporters render as "no data".
type CatalogStats struct {
	Matched   int              `json:"matched"`
	MeanPrice *decimal.Decimal `json:"meanPrice,omitempty"`
	MinPrice  *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice  *decimal.Decimal `json:"maxPrice,omitempty"`
}

// ComparisonTable is the final price-comparison output. Catalogs preserves
// the matcher's catalog ordering so exporters emit a deterministic column
// set; Rows are sorted by product name.
type ComparisonTable struct {
	Catalogs    []string                `json:"catalogs"`
	Rows        []ComparisonRow         `json:"rows"`
	Stats       map[string]CatalogStats `json:"stats"`
	GeneratedAt time.Time               `json:"generatedAt"`
}
