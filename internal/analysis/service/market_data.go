package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9&_-]{0,19}$`)

// ErrInvalidSymbol rejects empty or malformed symbols.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ValidateSymbol normalizes a user supplied symbol.
func ValidateSymbol(symbol string) (string, error) {
	s := utils.NormalizeSymbol(symbol)
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return s, nil
}

// MarketDataService exposes the cached category fetchers.
type MarketDataService interface {
	LiveQuote(ctx context.Context, symbol string) (dto.QuotePoint, error)
	History(ctx context.Context, symbol string, daysBack int) (dto.PriceSeries, error)
	Intraday1D(ctx context.Context, symbol string) (dto.PriceSeries, error)
	Intraday5D(ctx context.Context, symbol string) (dto.PriceSeries, error)
	Fundamentals(ctx context.Context, symbol string) (dto.FundamentalSnapshot, error)
	Now() time.Time
}

type marketDataService struct {
	yahoo repository.YahooFinanceRepository
	cache *StaleCache
	log   *logger.Logger
}

func NewMarketDataService(yahoo repository.YahooFinanceRepository, cache *StaleCache, log *logger.Logger) MarketDataService {
	return &marketDataService{yahoo: yahoo, cache: cache, log: log}
}

func (s *marketDataService) Now() time.Time {
	return s.cache.Now().In(utils.MarketLocation())
}

func (s *marketDataService) LiveQuote(ctx context.Context, symbol string) (dto.QuotePoint, error) {
	return GetOrRefresh(ctx, s.cache, common.CacheCategoryLive, symbol, common.LiveQuoteTTL,
		func(ctx context.Context) (dto.QuotePoint, error) {
			res, err := s.yahoo.GetChart(ctx, symbol, repository.ChartQuery{Range: "1d", Interval: "1d"})
			if err != nil {
				return dto.QuotePoint{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
			}
			return QuoteFromChart(res)
		})
}

// QuoteFromChart requires price, volume and previous close in the chart meta.
func QuoteFromChart(res *dto.ChartResult) (dto.QuotePoint, error) {
	meta := res.Meta
	prev := meta.PreviousClose
	if prev == nil {
		prev = meta.ChartPreviousClose
	}
	if meta.RegularMarketPrice == nil || meta.RegularMarketVolume == nil || prev == nil {
		return dto.QuotePoint{}, fmt.Errorf("%w: quote data incomplete", ErrFetchFailed)
	}
	if *meta.RegularMarketPrice <= 0 || *prev <= 0 || *meta.RegularMarketVolume < 0 {
		return dto.QuotePoint{}, fmt.Errorf("%w: quote data invalid", ErrFetchFailed)
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	return dto.QuotePoint{
		Price:         *meta.RegularMarketPrice,
		Volume:        *meta.RegularMarketVolume,
		PreviousClose: *prev,
		LongName:      name,
	}, nil
}

func (s *marketDataService) History(ctx context.Context, symbol string, daysBack int) (dto.PriceSeries, error) {
	key := fmt.Sprintf(common.HistoricalKeyFormat, symbol, daysBack)
	return GetOrRefresh(ctx, s.cache, common.CacheCategoryHistorical, key, common.HistoricalTTL,
		func(ctx context.Context) (dto.PriceSeries, error) {
			today := utils.StartOfDay(s.Now())
			q := repository.ChartQuery{
				Period1:  today.AddDate(0, 0, -daysBack),
				Period2:  today,
				Interval: "1d",
			}
			return s.fetchSeries(ctx, symbol, q)
		})
}

func (s *marketDataService) Intraday1D(ctx context.Context, symbol string) (dto.PriceSeries, error) {
	key := fmt.Sprintf(common.Intraday1DKeyFormat, symbol)
	return GetOrRefresh(ctx, s.cache, common.CacheCategoryIntraday1D, key, common.IntradayTTL,
		func(ctx context.Context) (dto.PriceSeries, error) {
			start, end := utils.IntradaySessionWindow(s.Now())
			q := repository.ChartQuery{Period1: start, Period2: end, Interval: "5m"}
			return s.fetchSeries(ctx, symbol, q)
		})
}

func (s *marketDataService) Intraday5D(ctx context.Context, symbol string) (dto.PriceSeries, error) {
	key := fmt.Sprintf(common.Intraday5DKeyFormat, symbol)
	return GetOrRefresh(ctx, s.cache, common.CacheCategoryIntraday5D, key, common.IntradayTTL,
		func(ctx context.Context) (dto.PriceSeries, error) {
			return s.fetchSeries(ctx, symbol, repository.ChartQuery{Range: "5d", Interval: "15m"})
		})
}

func (s *marketDataService) fetchSeries(ctx context.Context, symbol string, q repository.ChartQuery) (dto.PriceSeries, error) {
	res, err := s.yahoo.GetChart(ctx, symbol, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	series := SeriesFromChart(res)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no %s rows for %s", ErrFetchFailed, q.Interval, symbol)
	}
	return series, nil
}

// SeriesFromChart keeps close and volume, dropping bars without a close.
func SeriesFromChart(res *dto.ChartResult) dto.PriceSeries {
	if res == nil || len(res.Indicators.Quote) == 0 {
		return nil
	}
	q := res.Indicators.Quote[0]
	series := make(dto.PriceSeries, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		p := dto.PricePoint{
			Timestamp: time.Unix(ts, 0).In(utils.MarketLocation()),
			Close:     *q.Close[i],
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			p.Volume = *q.Volume[i]
		}
		series = append(series, p)
	}
	return series
}

func (s *marketDataService) Fundamentals(ctx context.Context, symbol string) (dto.FundamentalSnapshot, error) {
	return GetOrRefresh(ctx, s.cache, common.CacheCategoryFundamental, symbol, common.FundamentalTTL,
		func(ctx context.Context) (dto.FundamentalSnapshot, error) {
			res, err := s.yahoo.GetQuoteSummary(ctx, symbol)
			if err != nil {
				return dto.FundamentalSnapshot{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
			}
			return FundamentalsFromSummary(res)
		})
}

// FundamentalsFromSummary requires a market cap; every other field may be unavailable.
func FundamentalsFromSummary(res *dto.QuoteSummaryResult) (dto.FundamentalSnapshot, error) {
	var snap dto.FundamentalSnapshot

	var marketCap float64
	var ok bool
	if res.Price != nil {
		marketCap, ok = res.Price.MarketCap.Get()
	}
	if !ok && res.SummaryDetail != nil {
		marketCap, ok = res.SummaryDetail.MarketCap.Get()
	}
	if !ok || marketCap == 0 {
		return snap, fmt.Errorf("%w: market cap not found", ErrFetchFailed)
	}
	snap.MarketCap = dto.NewMetric(marketCap)
	snap.MarketCapDisplay = utils.FormatCrore(marketCap)

	if d := res.SummaryDetail; d != nil {
		if v, ok := d.TrailingPE.Get(); ok && v != 0 {
			snap.TrailingPE = dto.NewMetric(utils.Round(v, 2))
		}
		if v, ok := d.ForwardPE.Get(); ok && v != 0 {
			snap.ForwardPE = dto.NewMetric(utils.Round(v, 2))
		}
	}
	if f := res.FinancialData; f != nil {
		if v, ok := f.DebtToEquity.Get(); ok {
			snap.DebtToEquity = dto.NewMetric(utils.Round(v/100, 2))
		}
	}
	return snap, nil
}
