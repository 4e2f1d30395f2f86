package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/pricegrid/backend/config"
	"github.com/pricegrid/backend/internal/domain"
	"github.com/pricegrid/backend/internal/infrastructure/catalog"
	"github.com/pricegrid/backend/internal/infrastructure/export"
	"github.com/pricegrid/backend/internal/usecase"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the price-comparison table from raw retailer files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runProcess(cmd.Context(), cfg)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect then process",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := runCollect(cmd.Context(), cfg); err != nil {
			return err
		}
		return runProcess(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(runCmd)
}

func runProcess(ctx context.Context, cfg *config.Config) error {
	loader := catalog.NewLoader(cfg.Export.RawDir, cfg.Matching.EnableDebugLogging)
	records, err := loader.Records(ctx)
	if err != nil {
		return err
	}
	log.Printf("[PROCESS] loaded %d raw records", len(records))

	pipeline := usecase.NewPipelineService(usecase.PipelineConfig{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		CatalogOrder:        cfg.Matching.CatalogOrder,
		MinCatalogs:         cfg.Matching.MinCatalogs,
		EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
	})

	table, err := pipeline.BuildComparison(ctx, records)
	if err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		log.Printf("[PROCESS] no matching products found across retailers")
		return domain.ErrNoMatches
	}

	writer, err := export.New(cfg.Export.OutputDir)
	if err != nil {
		return err
	}

	tablePath, err := writer.ExportTable(table)
	if err != nil {
		return err
	}
	statsPath, err := writer.ExportStats(table)
	if err != nil {
		return err
	}

	log.Printf("[PROCESS] comparison table saved: %s", tablePath)
	log.Printf("[PROCESS] statistics saved: %s", statsPath)
	printStatistics(table)

	return nil
}

// printStatistics logs the per-catalog summary the way the stats export
// renders it.
func printStatistics(table *domain.ComparisonTable) {
	log.Printf("[PROCESS] total product matches: %d", len(table.Rows))
	for _, c := range table.Catalogs {
		stats := table.Stats[c]
		if stats.Matched == 0 {
			log.Printf("[PROCESS]   %s: no data", c)
			continue
		}
		log.Printf("[PROCESS]   %s: %d matched, mean %s, min %s, max %s",
			c, stats.Matched,
			stats.MeanPrice.StringFixed(2),
			stats.MinPrice.StringFixed(2),
			stats.MaxPrice.StringFixed(2))
	}
}
