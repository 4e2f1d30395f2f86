package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pricegrid/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// Collapses runs of whitespace to a single space
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// Matches a price fragment: digits, one of . or , then exactly two digits.
	// Only the first occurrence in a string is used.
	priceRegex = regexp.MustCompile(`(\d+[.,]\d{2})`)

	// Matches a weight/volume fragment: number, optional fraction, unit token
	weightVolumeRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|g|l|ml)`)

	// Matches multi-pack indicators like "6 x 330ml"
	multiPackRegex = regexp.MustCompile(`\d+\s*x\s*\d+\s*(ml|g|kg|l)`)

	// Matches bare size tokens like "500g", "1.5l", "20mm"
	sizeTokenRegex = regexp.MustCompile(`\d+(?:\.\d+)?\s*(ml|g|kg|l|mm)`)

	// Strips everything that is not a digit
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// stripAccents folds diacritics so "Crème" and "Creme" produce the same
// match key.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// titleCaser capitalizes each whitespace-delimited token.
var titleCaser = cases.Title(language.Und)

// Barcode lengths accepted after digit stripping: EAN-8, UPC-A, EAN-13, GTIN-14.
var validBarcodeLengths = map[int]bool{8: true, 12: true, 13: true, 14: true}

// stringify coerces a raw field value to its string form. Raw records come
// from loosely-typed collaborators, so a field may arrive as a string or a
// number. Returns ok=false for nil values.
func stringify(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return fmt.Sprint(v), true
	}
}

// isNullish reports whether a raw string is one of the sentinel values
// that crawlers emit for missing data.
func isNullish(s string) bool {
	switch strings.ToLower(s) {
	case "", "none", "nan":
		return true
	}
	return false
}

// CleanText normalizes a free-text field: rejects null-ish sentinels,
// collapses internal whitespace and trims the ends. Returns nil when
// nothing usable remains.
func CleanText(raw any) *string {
	s, ok := stringify(raw)
	if !ok || isNullish(s) {
		return nil
	}

	s = multipleSpacesRegex.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return nil
	}
	return &s
}

// CleanPrice extracts a currency-stripped price with two fractional digits.
// Numeric values are accepted directly; strings are scanned left-to-right
// for the first digits-separator-two-digits fragment, with "," treated as
// the decimal separator. Unparsable input maps to nil, never an error.
func CleanPrice(raw any) *decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		d := decimal.NewFromFloat(v).Round(2)
		return &d
	case int:
		d := decimal.NewFromInt(int64(v)).Round(2)
		return &d
	case decimal.Decimal:
		d := v.Round(2)
		return &d
	}

	s, ok := stringify(raw)
	if !ok || isNullish(s) {
		return nil
	}

	// A string that is entirely numeric is accepted as-is.
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		d := decimal.NewFromFloat(f).Round(2)
		return &d
	}

	match := priceRegex.FindString(s)
	if match == "" {
		return nil
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(match, ",", "."))
	if err != nil {
		return nil
	}
	return &d
}

// ParseWeightVolume parses a size like "1.5kg" or "500 ml" and converts it
// to the base unit: grams for weights, milliliters for volumes. kg and l
// are scaled by 1000; g and ml pass through. No match maps to nil.
func ParseWeightVolume(raw any) *decimal.Decimal {
	s, ok := stringify(raw)
	if !ok || isNullish(s) {
		return nil
	}

	m := weightVolumeRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return nil
	}

	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return nil
	}

	switch m[2] {
	case "kg", "l":
		value = value.Mul(decimal.NewFromInt(1000))
	}
	return &value
}

// NormalizeBrand cleans a brand field and capitalizes each token.
func NormalizeBrand(raw any) *string {
	cleaned := CleanText(raw)
	if cleaned == nil {
		return nil
	}
	s := titleCaser.String(*cleaned)
	return &s
}

// ValidateBarcode strips non-digit characters and keeps the result only
// when it has a plausible barcode length. SKU-like alphanumeric codes and
// partial scans are rejected to nil.
func ValidateBarcode(raw any) *string {
	s, ok := stringify(raw)
	if !ok || isNullish(s) {
		return nil
	}

	digits := nonDigitRegex.ReplaceAllString(s, "")
	if !validBarcodeLengths[len(digits)] {
		return nil
	}
	return &digits
}

// NormalizeUnit maps a unit-of-measure field onto the known enum. Garbage
// that survives text cleaning maps to UnitUnknown rather than nil, so the
// field's presence is preserved.
func NormalizeUnit(raw any) *domain.UnitOfMeasure {
	cleaned := CleanText(raw)
	if cleaned == nil {
		return nil
	}

	var unit domain.UnitOfMeasure
	switch strings.ToLower(*cleaned) {
	case "ea", "each":
		unit = domain.UnitEach
	case "kg":
		unit = domain.UnitKilogram
	case "l":
		unit = domain.UnitLitre
	default:
		unit = domain.UnitUnknown
	}
	return &unit
}

// NormalizeNameForMatching prepares a product name for similarity scoring:
// lower-cases, folds diacritics, strips multi-pack and size fragments so
// packaging does not bias the score, and collapses whitespace. Total over
// all inputs; the empty string is a valid non-matching output.
func NormalizeNameForMatching(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}

	s = multiPackRegex.ReplaceAllString(s, "")
	s = sizeTokenRegex.ReplaceAllString(s, "")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
