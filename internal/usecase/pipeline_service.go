package usecase

import (
	"context"
	"log"

	"github.com/pricegrid/backend/internal/domain"
)

// PipelineConfig holds configuration for the comparison pipeline.
type PipelineConfig struct {
	SimilarityThreshold int
	CatalogOrder        []string
	MinCatalogs         int
	EnableDebugLogging  bool
}

// PipelineService runs the batch transformation from raw records to a
// comparison table: normalize, match, build. It holds no state between
// invocations.
type PipelineService struct {
	normalizer         *ProductNormalizer
	matcher            *CrossCatalogMatcher
	builder            *ComparisonTableBuilder
	enableDebugLogging bool
}

// NewPipelineService creates a pipeline service with the given configuration.
func NewPipelineService(config PipelineConfig) *PipelineService {
	return &PipelineService{
		normalizer: NewProductNormalizer(config.EnableDebugLogging),
		matcher: NewCrossCatalogMatcher(MatcherConfig{
			SimilarityThreshold: config.SimilarityThreshold,
			CatalogOrder:        config.CatalogOrder,
			MinCatalogs:         config.MinCatalogs,
			EnableDebugLogging:  config.EnableDebugLogging,
		}),
		builder:            NewComparisonTableBuilder(),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// BuildComparison transforms a pooled batch of raw records into the final
// comparison table. Per-field parse failures degrade to absent and records
// without a usable name are excluded from matching; the only error is the
// structural one, a record missing its retailer, reported with the record
// index before anything is built. Zero matched groups yield an empty table,
// not an error.
func (s *PipelineService) BuildComparison(ctx context.Context, records []domain.RawProductRecord) (*domain.ComparisonTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := s.normalizer.NormalizeAll(records)

	groups, catalogs, err := s.matcher.Match(products)
	if err != nil {
		return nil, err
	}

	if s.enableDebugLogging {
		log.Printf("[PIPELINE] %d records -> %d groups across %d catalogs",
			len(records), len(groups), len(catalogs))
	}

	return s.builder.Build(catalogs, groups), nil
}
