// Package scraper harvests raw product records from retailer category
// pages. Selector definitions live in a YAML file so a retailer changing
// its markup never requires a code change.
package scraper

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoRetailers          = errors.New("at least one retailer is required")
	ErrRetailerMissingName  = errors.New("retailer name is required")
	ErrRetailerMissingURL   = errors.New("category_url is required")
	ErrMissingCardSelector  = errors.New("selectors.product_card is required")
	ErrMissingNameSelector  = errors.New("selectors.product_name is required")
	ErrMissingPriceSelector = errors.New("selectors.price is required")
	ErrNoEnabledRetailers   = errors.New("at least one retailer must be enabled")
)

// Selectors holds the CSS selectors used to pull fields off a listing page.
// Only product_card, product_name and price are mandatory; the rest are
// extracted when configured and skipped otherwise.
type Selectors struct {
	ProductCard  string `yaml:"product_card"`
	ProductLink  string `yaml:"product_link"`
	NextButton   string `yaml:"next_button"`
	ProductName  string `yaml:"product_name"`
	Price        string `yaml:"price"`
	PricePerUnit string `yaml:"price_per_unit"`
	Brand        string `yaml:"brand"`
	Size         string `yaml:"size_weight_volume"`
	Barcode      string `yaml:"barcode"`
}

// RetailerConfig describes one retailer's category page.
type RetailerConfig struct {
	Name        string    `yaml:"name"`
	CategoryURL string    `yaml:"category_url"`
	Category    string    `yaml:"category"`
	Selectors   Selectors `yaml:"selectors"`
	Enabled     bool      `yaml:"enabled"`
}

// Config is the top-level retailer configuration file.
type Config struct {
	Retailers []RetailerConfig `yaml:"retailers"`
}

// LoadConfig reads and validates a retailer configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading retailer config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing retailer config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if len(c.Retailers) == 0 {
		return ErrNoRetailers
	}

	enabled := 0
	for i, r := range c.Retailers {
		if r.Name == "" {
			return fmt.Errorf("retailer %d: %w", i, ErrRetailerMissingName)
		}
		if r.CategoryURL == "" {
			return fmt.Errorf("retailer %q: %w", r.Name, ErrRetailerMissingURL)
		}
		if r.Selectors.ProductCard == "" {
			return fmt.Errorf("retailer %q: %w", r.Name, ErrMissingCardSelector)
		}
		if r.Selectors.ProductName == "" {
			return fmt.Errorf("retailer %q: %w", r.Name, ErrMissingNameSelector)
		}
		if r.Selectors.Price == "" {
			return fmt.Errorf("retailer %q: %w", r.Name, ErrMissingPriceSelector)
		}
		if r.Enabled {
			enabled++
		}
	}

	if enabled == 0 {
		return ErrNoEnabledRetailers
	}
	return nil
}

// EnabledRetailers returns the retailers selected for collection, in file
// order so the collect stage is deterministic.
func (c *Config) EnabledRetailers() []RetailerConfig {
	var out []RetailerConfig
	for _, r := range c.Retailers {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
