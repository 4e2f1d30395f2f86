package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pricegrid/backend/config"
)

var (
	flagThreshold int
	flagMaxPages  int
	flagMaxItems  int
	flagRawDir    string
	flagOutputDir string
)

var rootCmd = &cobra.Command{
	Use:   "pricegrid",
	Short: "Cross-retailer price comparison pipeline",
	Long: `PriceGrid harvests product listings from configured retailers,
matches listings that denote the same physical product across catalogs,
and produces a price-comparison table.

Usage:
  pricegrid collect            # scrape retailers into raw CSV files
  pricegrid process            # build the comparison table from raw files
  pricegrid run                # both stages`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreshold, "threshold", 0, "similarity threshold 0-100 (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxPages, "max-pages", 0, "maximum pages to scrape per retailer (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxItems, "max-items", 0, "maximum items to scrape per retailer (0 = no limit)")
	rootCmd.PersistentFlags().StringVar(&flagRawDir, "raw-dir", "", "directory for raw retailer CSV files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for comparison outputs (default from config)")
}

// loadConfig loads the application config and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagThreshold > 0 {
		cfg.Matching.SimilarityThreshold = flagThreshold
	}
	if flagMaxPages > 0 {
		cfg.Scraper.MaxPages = flagMaxPages
	}
	if flagMaxItems > 0 {
		cfg.Scraper.MaxItems = flagMaxItems
	}
	if flagRawDir != "" {
		cfg.Export.RawDir = flagRawDir
	}
	if flagOutputDir != "" {
		cfg.Export.OutputDir = flagOutputDir
	}

	return cfg, nil
}
