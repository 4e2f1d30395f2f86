package usecase

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pricegrid/backend/internal/domain"
)

func priceOffer(price string) domain.CatalogOffer {
	d := decimal.RequireFromString(price)
	return domain.CatalogOffer{Price: &d}
}

func TestComparisonTableBuilder(t *testing.T) {
	b := NewComparisonTableBuilder()

	t.Run("rows are sorted by product name", func(t *testing.T) {
		table := b.Build([]string{"A", "B"}, []domain.ProductGroup{
			{ProductName: "Pies", Offers: map[string]domain.CatalogOffer{"A": priceOffer("10.00"), "B": priceOffer("11.00")}},
			{ProductName: "Chips", Offers: map[string]domain.CatalogOffer{"A": priceOffer("20.00"), "B": priceOffer("21.00")}},
			{ProductName: "Wings", Offers: map[string]domain.CatalogOffer{"A": priceOffer("30.00"), "B": priceOffer("31.00")}},
		})

		got := []string{table.Rows[0].ProductName, table.Rows[1].ProductName, table.Rows[2].ProductName}
		want := []string{"Chips", "Pies", "Wings"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("sort is case-sensitive and stable", func(t *testing.T) {
		table := b.Build([]string{"A", "B"}, []domain.ProductGroup{
			{ProductName: "apples", Offers: map[string]domain.CatalogOffer{"A": priceOffer("1.00"), "B": priceOffer("2.00")}},
			{ProductName: "Apples", Offers: map[string]domain.CatalogOffer{"A": priceOffer("3.00"), "B": priceOffer("4.00")}},
		})
		// Uppercase sorts before lowercase in byte order.
		if table.Rows[0].ProductName != "Apples" {
			t.Errorf("first row = %q, want %q", table.Rows[0].ProductName, "Apples")
		}
	})

	t.Run("statistics per catalog", func(t *testing.T) {
		table := b.Build([]string{"A", "B", "C"}, []domain.ProductGroup{
			{ProductName: "Pies", Offers: map[string]domain.CatalogOffer{"A": priceOffer("10.00"), "B": priceOffer("12.00")}},
			{ProductName: "Chips", Offers: map[string]domain.CatalogOffer{"A": priceOffer("20.00"), "B": priceOffer("14.00")}},
		})

		statsA := table.Stats["A"]
		if statsA.Matched != 2 {
			t.Errorf("A matched = %d, want 2", statsA.Matched)
		}
		if statsA.MeanPrice == nil || !statsA.MeanPrice.Equal(decimal.RequireFromString("15.00")) {
			t.Errorf("A mean = %v, want 15.00", statsA.MeanPrice)
		}
		if statsA.MinPrice == nil || !statsA.MinPrice.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("A min = %v, want 10.00", statsA.MinPrice)
		}
		if statsA.MaxPrice == nil || !statsA.MaxPrice.Equal(decimal.RequireFromString("20.00")) {
			t.Errorf("A max = %v, want 20.00", statsA.MaxPrice)
		}

		// Catalog C matched nothing: no data, not zeros.
		statsC := table.Stats["C"]
		if statsC.Matched != 0 {
			t.Errorf("C matched = %d, want 0", statsC.Matched)
		}
		if statsC.MeanPrice != nil || statsC.MinPrice != nil || statsC.MaxPrice != nil {
			t.Errorf("C stats = %+v, want nil prices", statsC)
		}
	})

	t.Run("empty group list builds an empty table", func(t *testing.T) {
		table := b.Build([]string{"A"}, nil)
		if len(table.Rows) != 0 {
			t.Errorf("rows = %d, want 0", len(table.Rows))
		}
		if table.Stats["A"].Matched != 0 {
			t.Errorf("stats = %+v, want no data", table.Stats["A"])
		}
	})

	t.Run("every row keeps the minimum catalog coverage", func(t *testing.T) {
		// The matcher enforces the invariant before groups reach the
		// builder; verify it holds through Build.
		m := NewCrossCatalogMatcher(MatcherConfig{SimilarityThreshold: 80})
		groups, catalogs, err := m.Match([]domain.NormalizedProduct{
			testProduct("A", "Beef Pie 500g", "10.00"),
			testProduct("A", "Lonely Lasagne", "33.00"),
			testProduct("B", "500g Beef Pie", "12.00"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		table := b.Build(catalogs, groups)
		for _, row := range table.Rows {
			priced := 0
			for _, offer := range row.Offers {
				if offer.Price != nil {
					priced++
				}
			}
			if priced < 2 {
				t.Errorf("row %q has %d priced catalogs, want >= 2", row.ProductName, priced)
			}
		}
	})
}
