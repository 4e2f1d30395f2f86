package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pricegrid/backend/config"
	"github.com/pricegrid/backend/internal/infrastructure/export"
	"github.com/pricegrid/backend/internal/infrastructure/scraper"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Scrape configured retailers into raw CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runCollect(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

// runCollect scrapes every enabled retailer and snapshots the raw records.
// A retailer that yields nothing is logged and skipped; the stage only
// fails when no retailer produced data at all.
func runCollect(ctx context.Context, cfg *config.Config) error {
	retailers, err := scraper.LoadConfig(cfg.Scraper.RetailersFile)
	if err != nil {
		return err
	}

	writer, err := export.New(cfg.Export.RawDir)
	if err != nil {
		return err
	}

	client := scraper.NewClient(
		cfg.Scraper.RequestsPerSecond,
		cfg.Scraper.Burst,
		cfg.Scraper.Timeout,
		cfg.Scraper.UserAgent,
	)
	client.SetDebug(cfg.Matching.EnableDebugLogging)

	collected := 0
	for _, retailer := range retailers.EnabledRetailers() {
		log.Printf("[COLLECT] scraping %s", retailer.Name)

		s := scraper.NewScraper(client, retailer, cfg.Scraper.MaxPages, cfg.Scraper.MaxItems, cfg.Matching.EnableDebugLogging)
		records, err := s.Run(ctx)
		if err != nil {
			log.Printf("[COLLECT] %s failed: %v", retailer.Name, err)
			continue
		}
		if len(records) == 0 {
			log.Printf("[COLLECT] %s yielded no products", retailer.Name)
			continue
		}

		path, err := writer.WriteRawRecords(retailer.Name, records)
		if err != nil {
			return err
		}
		log.Printf("[COLLECT] %s: %d products -> %s", retailer.Name, len(records), path)
		collected++
	}

	if collected == 0 {
		return fmt.Errorf("data collection failed for all retailers")
	}
	return nil
}
