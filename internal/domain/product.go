package domain

import "github.com/shopspring/decimal"

// Field names used by the crawler collaborators when emitting raw records.
// These are the only keys the core looks at; anything else is carried along
// untouched.
const (
	FieldProductName  = "product_name"
	FieldBrand        = "brand"
	FieldPrice        = "price"
	FieldPricePerUnit = "price_per_unit"
	FieldSize         = "size_weight_volume"
	FieldUnit         = "unit_of_measure"
	FieldBarcode      = "barcode"
	FieldProductURL   = "product_url"
	FieldRetailer     = "retailer"
	FieldCategory     = "category"
	FieldDescription  = "description"
)

// RawProductRecord is a single product as harvested from a retailer page:
// a flat field→value mapping with no guarantee about which fields are
// present. A missing key means the field is absent, which is not the same
// as an empty string.
type RawProductRecord map[string]any

// Field returns the value for a field and whether it was present at all.
func (r RawProductRecord) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// UnitOfMeasure is the normalized pricing unit reported by retailers.
type UnitOfMeasure string

const (
	UnitEach     UnitOfMeasure = "EA"
	UnitKilogram UnitOfMeasure = "kg"
	UnitLitre    UnitOfMeasure = "L"
	UnitUnknown  UnitOfMeasure = "unknown"
)

// NormalizedProduct is the typed, cleaned form of one raw record.
// Pointer fields distinguish "absent in the source" from a zero value:
// each field is either fully parsed or nil, never a partial value.
// The struct is derived once and never mutated afterwards.
type NormalizedProduct struct {
	ProductName    *string          `json:"productName,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	PricePerUnit   *decimal.Decimal `json:"pricePerUnit,omitempty"`
	SizeText       *string          `json:"sizeWeightVolume,omitempty"`
	NormalizedSize *decimal.Decimal `json:"normalizedSize,omitempty"`
	Unit           *UnitOfMeasure   `json:"unitOfMeasure,omitempty"`
	Barcode        *string          `json:"barcode,omitempty"`
	Retailer       string           `json:"retailer"`
	ProductURL     *string          `json:"productUrl,omitempty"`
}
