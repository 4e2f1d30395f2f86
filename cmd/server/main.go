package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricegrid/backend/config"
	httpDelivery "github.com/pricegrid/backend/internal/delivery/http"
	"github.com/pricegrid/backend/internal/infrastructure/cache"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceGrid Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Matching: threshold=%d%%, min catalogs=%d, debug=%v",
		cfg.Matching.SimilarityThreshold,
		cfg.Matching.MinCatalogs,
		cfg.Matching.EnableDebugLogging)

	// Initialize infrastructure dependencies
	tableCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(cfg.Matching, tableCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
