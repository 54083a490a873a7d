package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Quote struct {
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Exchange string `yaml:"exchange"`
		Parser   string `yaml:"parser"` // "scan" or "json"
	} `yaml:"quote"`
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"discord"`
	Scan struct {
		Watchlist []string `yaml:"watchlist"`
		Interval  string   `yaml:"interval"`
	} `yaml:"scan"`
	Digest struct {
		Cron string `yaml:"cron"` // empty disables the digest
	} `yaml:"digest"`
	Proxy string `yaml:"proxy"`
}

// defaultWatchlist is the fixed set of tickers scanned when none is
// configured.
var defaultWatchlist = []string{
	"AAPL", "MSFT", "NVDA", "META",
	"AMZN", "AMD", "GOOGL", "TSLA",
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then defaults.
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
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		cfg.Quote.APIKey = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("TOPFLOW_BASE_URL"); v != "" {
		cfg.Quote.BaseURL = v
	}
	if v := os.Getenv("TOPFLOW_EXCHANGE"); v != "" {
		cfg.Quote.Exchange = v
	}
	if v := os.Getenv("TOPFLOW_PARSER"); v != "" {
		cfg.Quote.Parser = v
	}
	if v := os.Getenv("TOPFLOW_SCAN_INTERVAL"); v != "" {
		cfg.Scan.Interval = v
	}
	if v := os.Getenv("TOPFLOW_WATCHLIST"); v != "" {
		var list []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		cfg.Scan.Watchlist = list
	}
	if v := os.Getenv("TOPFLOW_DIGEST_CRON"); v != "" {
		cfg.Digest.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Quote.BaseURL == "" {
		cfg.Quote.BaseURL = "https://api.twelvedata.com"
	}
	if cfg.Quote.Exchange == "" {
		cfg.Quote.Exchange = "NASDAQ"
	}
	if cfg.Quote.Parser == "" {
		cfg.Quote.Parser = "scan"
	}
	if cfg.Scan.Interval == "" {
		cfg.Scan.Interval = "30m"
	}
	if len(cfg.Scan.Watchlist) == 0 {
		cfg.Scan.Watchlist = append([]string(nil), defaultWatchlist...)
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Quote.APIKey == "" {
		return fmt.Errorf("quote.api_key is required")
	}
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("discord.webhook_url is required")
	}
	if len(c.Scan.Watchlist) == 0 {
		return fmt.Errorf("scan.watchlist must not be empty")
	}
	if c.Quote.Parser != "scan" && c.Quote.Parser != "json" {
		return fmt.Errorf("quote.parser must be \"scan\" or \"json\"")
	}
	d, err := time.ParseDuration(c.Scan.Interval)
	if err != nil {
		return fmt.Errorf("scan.interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("scan.interval must be positive")
	}
	return nil
}

// ScanInterval returns the parsed scan interval. Call Validate first.
func (c *Config) ScanInterval() time.Duration {
	d, err := time.ParseDuration(c.Scan.Interval)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}
