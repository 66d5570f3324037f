// Package config loads the storekeeper configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Qasimali-019/storekeeper/internal/analytics"
)

// Config holds the runtime configuration. All fields have defaults; a
// missing config file is not an error.
type Config struct {
	// CatalogPath is the flat-file catalog location.
	CatalogPath string `yaml:"catalog_path"`

	// DatabasePath is the SQLite audit log location.
	DatabasePath string `yaml:"database_path"`

	// AccountsDir holds customer credential, wishlist and order history files.
	AccountsDir string `yaml:"accounts_dir"`

	// AdminUsername and AdminPassword are the static administrator
	// credentials checked by admin commands.
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`

	// LowStockThreshold is the stock level below which summary reports
	// count a product as low on stock.
	LowStockThreshold int `yaml:"low_stock_threshold"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CatalogPath:       "products.txt",
		DatabasePath:      "storekeeper.db",
		AccountsDir:       "accounts",
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
		LowStockThreshold: analytics.DefaultLowStockThreshold,
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = analytics.DefaultLowStockThreshold
	}
	return cfg, nil
}
