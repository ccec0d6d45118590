// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/leadfoundry/sitebrief/internal/synthesis"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig               `mapstructure:"server"`
	Crawl     CrawlConfig                `mapstructure:"crawl"`
	Summary   SummaryConfig              `mapstructure:"summary"`
	Batch     BatchConfig                `mapstructure:"batch"`
	Store     StoreConfig                `mapstructure:"store"`
	Logging   LoggingConfig              `mapstructure:"logging"`
	Templates []synthesis.TemplateRecord `mapstructure:"templates"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CrawlConfig governs frontier and fetch behavior.
type CrawlConfig struct {
	MaxPages            int    `mapstructure:"max_pages"`
	PerFetchTimeoutSec  int    `mapstructure:"per_fetch_timeout_seconds"`
	WallBudgetSec       int    `mapstructure:"wall_budget_seconds"`
	Concurrency         int    `mapstructure:"concurrency"`
	DiscoveryTimeoutSec int    `mapstructure:"discovery_timeout_seconds"`
	UserAgent           string `mapstructure:"user_agent"`
}

// SummaryConfig bounds the final summary and selects its rendering style.
type SummaryConfig struct {
	MinWords int    `mapstructure:"min_words"`
	MaxWords int    `mapstructure:"max_words"`
	Style    string `mapstructure:"style"`
}

// BatchConfig sizes the CSV job dispatcher.
type BatchConfig struct {
	Workers    int `mapstructure:"workers"`
	QueueDepth int `mapstructure:"queue_depth"`
}

// StoreConfig selects and configures the job store backend.
type StoreConfig struct {
	Provider     string `mapstructure:"provider"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Templates) == 0 {
		cfg.Templates = synthesis.DefaultTemplates()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("crawl.max_pages", 15)
	v.SetDefault("crawl.per_fetch_timeout_seconds", 6)
	v.SetDefault("crawl.wall_budget_seconds", 45)
	v.SetDefault("crawl.concurrency", 4)
	v.SetDefault("crawl.discovery_timeout_seconds", 6)
	v.SetDefault("crawl.user_agent", "")
	v.SetDefault("summary.min_words", 130)
	v.SetDefault("summary.max_words", 200)
	v.SetDefault("summary.style", string(synthesis.StyleSales))
	v.SetDefault("batch.workers", 3)
	v.SetDefault("batch.queue_depth", 32)
	v.SetDefault("store.provider", "memory")
	v.SetDefault("store.max_open_conns", 4)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawl.MaxPages <= 0 {
		return fmt.Errorf("crawl.max_pages must be > 0")
	}
	if c.Crawl.PerFetchTimeoutSec <= 0 {
		return fmt.Errorf("crawl.per_fetch_timeout_seconds must be > 0")
	}
	if c.Crawl.Concurrency <= 0 {
		return fmt.Errorf("crawl.concurrency must be > 0")
	}
	if c.Summary.MinWords <= 0 || c.Summary.MaxWords < c.Summary.MinWords {
		return fmt.Errorf("summary words window must satisfy 0 < min <= max")
	}
	if !synthesis.Style(c.Summary.Style).Valid() {
		return fmt.Errorf("summary.style %q is not one of sales, clean, structured", c.Summary.Style)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be > 0")
	}
	switch c.Store.Provider {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn must be set when store.provider is postgres")
		}
	default:
		return fmt.Errorf("store.provider %q is not one of memory, postgres", c.Store.Provider)
	}
	return nil
}

// PerFetchTimeout converts the configured seconds into a duration.
func (c CrawlConfig) PerFetchTimeout() time.Duration {
	return time.Duration(c.PerFetchTimeoutSec) * time.Second
}

// WallBudget converts the configured seconds into a duration.
func (c CrawlConfig) WallBudget() time.Duration {
	return time.Duration(c.WallBudgetSec) * time.Second
}

// DiscoveryTimeout converts the configured seconds into a duration.
func (c CrawlConfig) DiscoveryTimeout() time.Duration {
	return time.Duration(c.DiscoveryTimeoutSec) * time.Second
}
