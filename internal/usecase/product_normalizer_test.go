package usecase

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pricegrid/backend/internal/domain"
)

func TestProductNormalizer(t *testing.T) {
	n := NewProductNormalizer(false)

	t.Run("normalizes a full record", func(t *testing.T) {
		raw := domain.RawProductRecord{
			domain.FieldProductName:  "  Frozen   Beef Pie 500g ",
			domain.FieldBrand:        "sea harvest",
			domain.FieldPrice:        "R 89.99",
			domain.FieldPricePerUnit: "17,99",
			domain.FieldSize:         "500g",
			domain.FieldUnit:         "EA",
			domain.FieldBarcode:      "6001234567890",
			domain.FieldRetailer:     "Shoprite",
			domain.FieldProductURL:   "https://example.com/p/1",
		}

		p := n.Normalize(raw)

		if p.ProductName == nil || *p.ProductName != "Frozen Beef Pie 500g" {
			t.Errorf("ProductName = %v, want %q", p.ProductName, "Frozen Beef Pie 500g")
		}
		if p.Brand == nil || *p.Brand != "Sea Harvest" {
			t.Errorf("Brand = %v, want %q", p.Brand, "Sea Harvest")
		}
		if p.Price == nil || !p.Price.Equal(decimal.RequireFromString("89.99")) {
			t.Errorf("Price = %v, want 89.99", p.Price)
		}
		if p.PricePerUnit == nil || !p.PricePerUnit.Equal(decimal.RequireFromString("17.99")) {
			t.Errorf("PricePerUnit = %v, want 17.99", p.PricePerUnit)
		}
		if p.SizeText == nil || *p.SizeText != "500g" {
			t.Errorf("SizeText = %v, want %q", p.SizeText, "500g")
		}
		if p.NormalizedSize == nil || !p.NormalizedSize.Equal(decimal.NewFromInt(500)) {
			t.Errorf("NormalizedSize = %v, want 500", p.NormalizedSize)
		}
		if p.Unit == nil || *p.Unit != domain.UnitEach {
			t.Errorf("Unit = %v, want EA", p.Unit)
		}
		if p.Barcode == nil || *p.Barcode != "6001234567890" {
			t.Errorf("Barcode = %v, want kept", p.Barcode)
		}
		if p.Retailer != "Shoprite" {
			t.Errorf("Retailer = %q, want Shoprite", p.Retailer)
		}
	})

	t.Run("absent fields stay absent", func(t *testing.T) {
		p := n.Normalize(domain.RawProductRecord{
			domain.FieldProductName: "Hake Fillets",
			domain.FieldRetailer:    "Checkers",
		})

		if p.Brand != nil || p.Price != nil || p.SizeText != nil || p.Barcode != nil || p.Unit != nil {
			t.Errorf("expected untouched fields to be nil, got %+v", p)
		}
	})

	t.Run("malformed fields degrade individually", func(t *testing.T) {
		p := n.Normalize(domain.RawProductRecord{
			domain.FieldProductName: "Hake Fillets",
			domain.FieldPrice:       "call in store",
			domain.FieldBarcode:     "SKU-991",
			domain.FieldRetailer:    "Checkers",
		})

		if p.Price != nil {
			t.Errorf("Price = %v, want nil for unparsable input", p.Price)
		}
		if p.Barcode != nil {
			t.Errorf("Barcode = %v, want nil for SKU-like code", p.Barcode)
		}
		if p.ProductName == nil {
			t.Error("ProductName should survive other fields failing")
		}
	})

	t.Run("fully empty record is still valid", func(t *testing.T) {
		p := n.Normalize(domain.RawProductRecord{})
		if p.Retailer != "" || p.ProductName != nil {
			t.Errorf("empty record should normalize to zero product, got %+v", p)
		}
	})
}
