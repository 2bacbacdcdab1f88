package common

import "time"

// Cache categories. Each category is stored in its own namespace.
const (
	CacheCategoryLive        = "live_quotes"
	CacheCategoryFundamental = "fundamental_cache"
	CacheCategoryHistorical  = "historical_data"
	CacheCategoryIntraday1D  = "intraday_1d_data"
	CacheCategoryIntraday5D  = "intraday_5d_data"
)

// Cache TTLs per category.
const (
	LiveQuoteTTL   = 30 * time.Minute
	FundamentalTTL = 30 * time.Minute
	IntradayTTL    = 30 * time.Minute
	HistoricalTTL  = 24 * time.Hour
)

// Cache key formats.
const (
	HistoricalKeyFormat = "%s_%d"
	Intraday1DKeyFormat = "%s_1d"
	Intraday5DKeyFormat = "%s_5d"
)

// Cache store drivers.
const (
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
	CacheDriverMemory   = "memory"
	CacheDriverNone     = "none"
)

const (
	MarketTimezone  = "Asia/Kolkata"
	NSETickerSuffix = ".NS"

	DataSourceLive = "Live (Yahoo Finance)"
	DataSourceEOD  = "EOD (Yahoo Finance)"

	NotAvailable = "N/A"
)
