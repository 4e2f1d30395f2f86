package usecase

import (
	"log"

	"github.com/pricegrid/backend/internal/domain"
)

// ProductNormalizer turns raw crawler records into typed NormalizedProducts.
// It is referentially transparent: malformed fields degrade to absent for
// that field only and the record as a whole never fails. A record with every
// field absent is still a valid (if useless) product; discarding it is the
// matcher's job.
type ProductNormalizer struct {
	enableDebugLogging bool
}

// NewProductNormalizer creates a product normalizer.
func NewProductNormalizer(enableDebugLogging bool) *ProductNormalizer {
	return &ProductNormalizer{enableDebugLogging: enableDebugLogging}
}

// Normalize applies the field normalizers to every present field of one raw
// record. Fields absent in the input stay absent in the output; no defaults
// are fabricated at this layer.
func (n *ProductNormalizer) Normalize(raw domain.RawProductRecord) domain.NormalizedProduct {
	var p domain.NormalizedProduct

	if v, ok := raw.Field(domain.FieldProductName); ok {
		p.ProductName = CleanText(v)
	}
	if v, ok := raw.Field(domain.FieldBrand); ok {
		p.Brand = NormalizeBrand(v)
	}
	if v, ok := raw.Field(domain.FieldPrice); ok {
		p.Price = CleanPrice(v)
	}
	if v, ok := raw.Field(domain.FieldPricePerUnit); ok {
		p.PricePerUnit = CleanPrice(v)
	}
	if v, ok := raw.Field(domain.FieldSize); ok {
		p.SizeText = CleanText(v)
		p.NormalizedSize = ParseWeightVolume(v)
	}
	if v, ok := raw.Field(domain.FieldUnit); ok {
		p.Unit = NormalizeUnit(v)
	}
	if v, ok := raw.Field(domain.FieldBarcode); ok {
		p.Barcode = ValidateBarcode(v)
	}
	if v, ok := raw.Field(domain.FieldProductURL); ok {
		p.ProductURL = CleanText(v)
	}
	if v, ok := raw.Field(domain.FieldRetailer); ok {
		if retailer := CleanText(v); retailer != nil {
			p.Retailer = *retailer
		}
	}

	if n.enableDebugLogging {
		name := "<absent>"
		if p.ProductName != nil {
			name = *p.ProductName
		}
		log.Printf("[NORM] %s: %q", p.Retailer, name)
	}

	return p
}

// NormalizeAll normalizes a batch of raw records, preserving input order so
// record indexes stay meaningful for structural error reporting.
func (n *ProductNormalizer) NormalizeAll(raws []domain.RawProductRecord) []domain.NormalizedProduct {
	products := make([]domain.NormalizedProduct, 0, len(raws))
	for _, raw := range raws {
		products = append(products, n.Normalize(raw))
	}
	return products
}
