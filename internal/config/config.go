package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DirectoryFile string `yaml:"directory_file"`
	CacheDir      string `yaml:"cache_dir"`
	ExportDir     string `yaml:"export_dir"`
	Database      struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Provider struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		ConvertID int    `yaml:"convert_id"`
	} `yaml:"provider"`
	Schedule struct {
		SyncCron string `yaml:"sync_cron"`
	} `yaml:"schedule"`
	Watchlist []string `yaml:"watchlist"`
	Proxy     string   `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DIRECTORY_FILE"); v != "" {
		cfg.DirectoryFile = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CMC_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("CMC_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("CMC_CONVERT_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Provider.ConvertID = id
		}
	}
	if v := os.Getenv("SYNC_CRON"); v != "" {
		cfg.Schedule.SyncCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DirectoryFile == "" {
		cfg.DirectoryFile = "currency_ids.json"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "json"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "excel"
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.coinmarketcap.com"
	}
	if cfg.Provider.ConvertID == 0 {
		cfg.Provider.ConvertID = 2781 // USD
	}
	if cfg.Schedule.SyncCron == "" {
		cfg.Schedule.SyncCron = "0 0 6 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DirectoryFile == "" {
		return fmt.Errorf("directory_file is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.ConvertID <= 0 {
		return fmt.Errorf("provider.convert_id must be positive")
	}
	return nil
}
