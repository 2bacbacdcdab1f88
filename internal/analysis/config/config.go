package config

import (
	"fmt"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/config"
)

// Cache holds the durable cache store settings.
type Cache struct {
	Driver       string        `mapstructure:"driver"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// YahooFinance holds market data provider settings.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// News holds news feed settings.
type News struct {
	BaseURL     string        `mapstructure:"base_url"`
	QuerySuffix string        `mapstructure:"query_suffix"`
	Language    string        `mapstructure:"language"`
	Country     string        `mapstructure:"country"`
	Edition     string        `mapstructure:"edition"`
	MaxItems    int           `mapstructure:"max_items"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Trending holds ranking engine settings.
type Trending struct {
	Delay               time.Duration `mapstructure:"delay"`
	Workers             int           `mapstructure:"workers"`
	HistoryDays         int           `mapstructure:"history_days"`
	MaxResults          int           `mapstructure:"max_results"`
	VolumeFilter        bool          `mapstructure:"volume_filter"`
	MinVolumeFactor     float64       `mapstructure:"min_volume_factor"`
	UniverseURL         string        `mapstructure:"universe_url"`
	UniverseSize        int           `mapstructure:"universe_size"`
	UniverseCacheFor    time.Duration `mapstructure:"universe_cache_for"`
	FallbackUniverse    []string      `mapstructure:"fallback_universe"`
	DisplayNameCacheFor time.Duration `mapstructure:"display_name_cache_for"`
}

// Advice holds advice engine settings.
type Advice struct {
	LongHorizonDays  int `mapstructure:"long_horizon_days"`
	ShortHorizonDays int `mapstructure:"short_horizon_days"`
}

// Warmer holds the scheduled cache warm-up settings.
type Warmer struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Notify   bool   `mapstructure:"notify"`
	TopN     int    `mapstructure:"top_n"`
}

// Config holds the full configuration for the analysis service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Telegram     config.Telegram `mapstructure:"telegram"`
	Cache        Cache           `mapstructure:"cache"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	News         News            `mapstructure:"news"`
	Trending     Trending        `mapstructure:"trending"`
	Advice       Advice          `mapstructure:"advice"`
	Warmer       Warmer          `mapstructure:"warmer"`
}

// Load loads the analysis configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with the shipped defaults and no file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.API.Port == 0 {
		c.API.Port = 8000
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = common.CacheDriverNone
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "stocks"
	}
	if c.Cache.FetchTimeout <= 0 {
		c.Cache.FetchTimeout = 15 * time.Second
	}
	if c.YahooFinance.BaseURL == "" {
		c.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.YahooFinance.MaxRequestPerMinute <= 0 {
		c.YahooFinance.MaxRequestPerMinute = 120
	}
	if c.YahooFinance.Timeout <= 0 {
		c.YahooFinance.Timeout = 10 * time.Second
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://news.google.com/rss/search"
	}
	if c.News.QuerySuffix == "" {
		c.News.QuerySuffix = " stock market India"
	}
	if c.News.Language == "" {
		c.News.Language = "en-IN"
	}
	if c.News.Country == "" {
		c.News.Country = "IN"
	}
	if c.News.Edition == "" {
		c.News.Edition = "IN:en"
	}
	if c.News.MaxItems <= 0 {
		c.News.MaxItems = 5
	}
	if c.News.Timeout <= 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.Trending.Delay <= 0 {
		c.Trending.Delay = 1500 * time.Millisecond
	}
	if c.Trending.Workers <= 0 {
		c.Trending.Workers = 4
	}
	if c.Trending.HistoryDays <= 0 {
		c.Trending.HistoryDays = 30
	}
	if c.Trending.MaxResults <= 0 {
		c.Trending.MaxResults = 30
	}
	if c.Trending.UniverseURL == "" {
		c.Trending.UniverseURL = "https://en.wikipedia.org/wiki/NIFTY_50"
	}
	if c.Trending.UniverseSize <= 0 {
		c.Trending.UniverseSize = 30
	}
	if c.Trending.UniverseCacheFor <= 0 {
		c.Trending.UniverseCacheFor = 24 * time.Hour
	}
	if c.Trending.DisplayNameCacheFor <= 0 {
		c.Trending.DisplayNameCacheFor = 24 * time.Hour
	}
	if len(c.Trending.FallbackUniverse) == 0 {
		c.Trending.FallbackUniverse = []string{
			"RELIANCE", "TCS", "HDFCBANK", "INFY", "SBIN",
			"ICICIBANK", "LT", "HINDUNILVR", "BAJFINANCE", "ADANIPORTS",
		}
	}
	if c.Advice.LongHorizonDays <= 0 {
		c.Advice.LongHorizonDays = 1825
	}
	if c.Advice.ShortHorizonDays <= 0 {
		c.Advice.ShortHorizonDays = 200
	}
	if c.Warmer.Schedule == "" {
		c.Warmer.Schedule = "*/30 9-15 * * 1-5"
	}
	if c.Warmer.TopN <= 0 {
		c.Warmer.TopN = 10
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case common.CacheDriverRedis, common.CacheDriverPostgres, common.CacheDriverMemory, common.CacheDriverNone:
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if c.Trending.VolumeFilter && c.Trending.MinVolumeFactor < 0 {
		return fmt.Errorf("trending.min_volume_factor must not be negative")
	}
	return nil
}
