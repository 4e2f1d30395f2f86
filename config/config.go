package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Matching  MatchingConfig
	Scraper   ScraperConfig
	Export    ExportConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MatchingConfig holds cross-catalog matching configuration
type MatchingConfig struct {
	// SimilarityThreshold is the 0-100 minimum score to accept a match
	SimilarityThreshold int `mapstructure:"similarity_threshold"`
	// CatalogOrder fixes catalog ordering; the first entry present in the
	// input becomes the reference catalog
	CatalogOrder []string `mapstructure:"catalog_order"`
	// MinCatalogs is the minimum catalog coverage a group needs
	MinCatalogs        int  `mapstructure:"min_catalogs"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// ScraperConfig holds retailer scraping configuration
type ScraperConfig struct {
	RetailersFile     string        `mapstructure:"retailers_file"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxPages          int           `mapstructure:"max_pages"`
	MaxItems          int           `mapstructure:"max_items"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// ExportConfig holds file output configuration
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	RawDir    string `mapstructure:"raw_dir"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricegrid/")

	// Environment variable settings
	v.SetEnvPrefix("PRICEGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Matching defaults
	v.SetDefault("matching.similarity_threshold", 80)
	v.SetDefault("matching.catalog_order", []string{})
	v.SetDefault("matching.min_catalogs", 2)
	v.SetDefault("matching.enable_debug_logging", false)

	// Scraper defaults
	v.SetDefault("scraper.retailers_file", "retailers.yaml")
	v.SetDefault("scraper.requests_per_second", 0.5)
	v.SetDefault("scraper.burst", 5)
	v.SetDefault("scraper.timeout", "30s")
	v.SetDefault("scraper.max_pages", 3)
	v.SetDefault("scraper.max_items", 0)
	v.SetDefault("scraper.user_agent", "PriceGrid/1.0")

	// Export defaults
	v.SetDefault("export.output_dir", "data/processed")
	v.SetDefault("export.raw_dir", "data/raw")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.SimilarityThreshold < 0 || config.Matching.SimilarityThreshold > 100 {
		return fmt.Errorf("matching.similarity_threshold must be in [0,100], got: %d", config.Matching.SimilarityThreshold)
	}

	if config.Matching.MinCatalogs < 2 {
		return fmt.Errorf("matching.min_catalogs must be at least 2, got: %d", config.Matching.MinCatalogs)
	}

	if config.Scraper.RequestsPerSecond <= 0 {
		return fmt.Errorf("scraper.requests_per_second must be positive, got: %f", config.Scraper.RequestsPerSecond)
	}

	if config.Scraper.MaxPages < 1 {
		return fmt.Errorf("scraper.max_pages must be at least 1, got: %d", config.Scraper.MaxPages)
	}

	if config.Export.OutputDir == "" || config.Export.RawDir == "" {
		return fmt.Errorf("export.output_dir and export.raw_dir are required")
	}

	return nil
}
