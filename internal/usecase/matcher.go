package usecase

import (
	"fmt"
	"log"

	"github.com/pricegrid/backend/internal/domain"
)

// Matching defaults
const (
	defaultSimilarityThreshold = 80
	defaultMinCatalogs         = 2
)

// MatcherConfig holds configuration for the cross-catalog matcher.
type MatcherConfig struct {
	// SimilarityThreshold is the minimum 0–100 score to accept a match.
	SimilarityThreshold int
	// CatalogOrder fixes the catalog ordering (and thereby the reference
	// catalog). Catalogs not listed follow in first-seen input order.
	CatalogOrder []string
	// MinCatalogs is the minimum number of priced catalogs a group needs
	// to be emitted.
	MinCatalogs        int
	EnableDebugLogging bool
}

// CrossCatalogMatcher groups normalized products from different catalogs
// into sets believed to denote the same physical product. Products of the
// reference catalog seed groups; each other catalog contributes at most one
// still-unclaimed best match per group, and a candidate claimed by one group
// is never reused by another.
type CrossCatalogMatcher struct {
	similarityThreshold int
	catalogOrder        []string
	minCatalogs         int
	enableDebugLogging  bool
}

// NewCrossCatalogMatcher creates a matcher with the given configuration.
func NewCrossCatalogMatcher(config MatcherConfig) *CrossCatalogMatcher {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}

	minCatalogs := config.MinCatalogs
	if minCatalogs <= 0 {
		minCatalogs = defaultMinCatalogs
	}

	return &CrossCatalogMatcher{
		similarityThreshold: threshold,
		catalogOrder:        config.CatalogOrder,
		minCatalogs:         minCatalogs,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// candidatePool owns one catalog's still-unclaimed products during a single
// match run. Claiming is the only mutation; once an index is claimed it is
// never offered again, which keeps the at-most-one-claim invariant local to
// the pool instead of spread across shared state.
type candidatePool struct {
	products  []domain.NormalizedProduct
	matchKeys []string
	claimed   []bool
}

func newCandidatePool(products []domain.NormalizedProduct) *candidatePool {
	keys := make([]string, len(products))
	for i, p := range products {
		keys[i] = NormalizeNameForMatching(*p.ProductName)
	}
	return &candidatePool{
		products:  products,
		matchKeys: keys,
		claimed:   make([]bool, len(products)),
	}
}

// bestMatch returns the unclaimed candidate with the highest similarity to
// key. Ties go to the lowest index, so results only depend on input order.
func (p *candidatePool) bestMatch(key string) (int, int) {
	bestIdx := -1
	bestScore := -1
	for i := range p.products {
		if p.claimed[i] {
			continue
		}
		if score := TokenSortRatio(key, p.matchKeys[i]); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx, bestScore
}

func (p *candidatePool) claim(i int) domain.NormalizedProduct {
	p.claimed[i] = true
	return p.products[i]
}

// Match partitions products by retailer and builds cross-catalog groups.
// The first catalog in the configured order is the reference; every
// reference product seeds at most one group. Groups spanning fewer than
// the minimum number of priced catalogs are discarded silently; an
// unmatched single-retailer listing is expected, not exceptional.
//
// A product with an empty retailer cannot be partitioned; that is the one
// structural error, reported with the offending record's index before any
// group is built. Products lacking a name are skipped, not errors.
//
// Given identical input ordering and threshold, the returned group list and
// catalog ordering are reproducible bit for bit.
func (m *CrossCatalogMatcher) Match(products []domain.NormalizedProduct) ([]domain.ProductGroup, []string, error) {
	for i, p := range products {
		if p.Retailer == "" {
			return nil, nil, fmt.Errorf("record %d: %w", i, domain.ErrMissingRetailer)
		}
	}

	byCatalog := make(map[string][]domain.NormalizedProduct)
	var seen []string
	for _, p := range products {
		if p.ProductName == nil {
			continue
		}
		if _, ok := byCatalog[p.Retailer]; !ok {
			seen = append(seen, p.Retailer)
		}
		byCatalog[p.Retailer] = append(byCatalog[p.Retailer], p)
	}

	catalogs := orderCatalogs(seen, m.catalogOrder)
	if len(catalogs) == 0 {
		return nil, catalogs, nil
	}

	reference := catalogs[0]
	if m.enableDebugLogging {
		log.Printf("[MATCH] Catalogs: %v | Reference: %s (%d products)",
			catalogs, reference, len(byCatalog[reference]))
	}

	pools := make(map[string]*candidatePool, len(catalogs))
	for _, c := range catalogs[1:] {
		pools[c] = newCandidatePool(byCatalog[c])
	}

	var groups []domain.ProductGroup
	for _, ref := range byCatalog[reference] {
		group := domain.ProductGroup{
			ProductName: *ref.ProductName,
			Brand:       ref.Brand,
			Size:        ref.SizeText,
			Offers: map[string]domain.CatalogOffer{
				reference: offerOf(ref),
			},
		}

		refKey := NormalizeNameForMatching(*ref.ProductName)
		for _, c := range catalogs[1:] {
			idx, score := pools[c].bestMatch(refKey)
			if idx < 0 || score < m.similarityThreshold {
				continue
			}

			matched := pools[c].claim(idx)
			group.Offers[c] = offerOf(matched)

			if m.enableDebugLogging {
				log.Printf("[MATCH] %q <-> %q (%s, %d%%)",
					*ref.ProductName, *matched.ProductName, c, score)
			}
		}

		if group.PricedCatalogs() >= m.minCatalogs {
			groups = append(groups, group)
		}
	}

	if m.enableDebugLogging {
		log.Printf("[MATCH] %d product groups span %d+ catalogs", len(groups), m.minCatalogs)
	}

	return groups, catalogs, nil
}

func offerOf(p domain.NormalizedProduct) domain.CatalogOffer {
	return domain.CatalogOffer{
		Price:        p.Price,
		PricePerUnit: p.PricePerUnit,
		URL:          p.ProductURL,
	}
}

// orderCatalogs applies the caller-supplied ordering: preferred catalogs
// that actually occur come first, in preference order; the rest keep their
// first-seen order. The result never re-sorts by size or name, so the
// reference choice is stable across runs.
func orderCatalogs(seen, preferred []string) []string {
	present := make(map[string]bool, len(seen))
	for _, c := range seen {
		present[c] = true
	}

	ordered := make([]string, 0, len(seen))
	picked := make(map[string]bool, len(seen))
	for _, c := range preferred {
		if present[c] && !picked[c] {
			ordered = append(ordered, c)
			picked[c] = true
		}
	}
	for _, c := range seen {
		if !picked[c] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
