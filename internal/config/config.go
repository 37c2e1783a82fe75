// Package config loads stocksight configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for stocksight.
type Config struct {
	Server     Server     `yaml:"server"`
	Catalog    Catalog    `yaml:"catalog"`
	MarketData MarketData `yaml:"market_data"`
	Sentiment  Sentiment  `yaml:"sentiment"`
	Models     Models     `yaml:"models"`
	Logging    Logging    `yaml:"logging"`
}

// Server holds the HTTP listener configuration.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Catalog points at the static stock list. CSVPath is used unless SQLitePath
// is set, in which case records are read from the `stocks` table of that
// database instead.
type Catalog struct {
	CSVPath    string `yaml:"csv_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

// MarketData selects and configures the historical price provider.
type MarketData struct {
	// Provider is "alpaca" (live API) or "parquet" (local read-only archive).
	Provider string `yaml:"provider"`

	// DataDir is the root of the local Parquet bar archive, used when
	// Provider is "parquet".
	DataDir string `yaml:"data_dir"`

	Alpaca Alpaca `yaml:"alpaca"`

	DefaultPeriod   string `yaml:"default_period"`
	DefaultInterval string `yaml:"default_interval"`

	// CacheSize bounds the in-process LRU cache of historical series.
	CacheSize int `yaml:"cache_size"`
}

// Alpaca holds credentials for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Sentiment configures the news and search-interest fetchers.
type Sentiment struct {
	NewsAPIKey      string `yaml:"news_api_key"`
	NewsBaseURL     string `yaml:"news_base_url"`
	TrendsBaseURL   string `yaml:"trends_base_url"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// Models points at the directory of pre-trained per-ticker artifacts.
type Models struct {
	Dir string `yaml:"dir"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration at path, applies environment variable
// overrides, and fills in defaults. A missing file is not an error; the
// returned Config then holds only overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.CSVPath = v
	}
	if v := os.Getenv("CATALOG_SQLITE_PATH"); v != "" {
		cfg.Catalog.SQLitePath = v
	}

	if v := os.Getenv("MARKET_DATA_PROVIDER"); v != "" {
		cfg.MarketData.Provider = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.MarketData.DataDir = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.MarketData.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.MarketData.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.MarketData.Alpaca.DataURL = v
	}

	// Canonical Alpaca env vars used by the SDK take priority.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.MarketData.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.MarketData.Alpaca.APISecret = v
	}

	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Sentiment.NewsAPIKey = v
	}

	if v := os.Getenv("MODELS_DIR"); v != "" {
		cfg.Models.Dir = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// applyDefaults fills unset fields with working defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.CSVPath == "" {
		cfg.Catalog.CSVPath = "data/stock_list.csv"
	}
	if cfg.MarketData.Provider == "" {
		cfg.MarketData.Provider = "alpaca"
	}
	if cfg.MarketData.DefaultPeriod == "" {
		cfg.MarketData.DefaultPeriod = "6mo"
	}
	if cfg.MarketData.DefaultInterval == "" {
		cfg.MarketData.DefaultInterval = "1d"
	}
	if cfg.MarketData.CacheSize == 0 {
		cfg.MarketData.CacheSize = 50
	}
	if cfg.Sentiment.NewsBaseURL == "" {
		cfg.Sentiment.NewsBaseURL = "https://newsapi.org/v2/everything"
	}
	if cfg.Sentiment.TrendsBaseURL == "" {
		cfg.Sentiment.TrendsBaseURL = "https://trends.google.com/trends/api"
	}
	if cfg.Sentiment.RateLimitPerMin == 0 {
		cfg.Sentiment.RateLimitPerMin = 30
	}
	if cfg.Models.Dir == "" {
		cfg.Models.Dir = "models"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
