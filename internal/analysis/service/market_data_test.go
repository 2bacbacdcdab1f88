package service

import (
	"context"
	"testing"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSymbol(t *testing.T) {
	got, err := ValidateSymbol(" tcs.ns ")
	require.NoError(t, err)
	assert.Equal(t, "TCS", got)

	got, err = ValidateSymbol("M&M")
	require.NoError(t, err)
	assert.Equal(t, "M&M", got)

	for _, bad := range []string{"", "   ", "TCS;DROP", "../etc", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"} {
		_, err := ValidateSymbol(bad)
		assert.ErrorIs(t, err, ErrInvalidSymbol, bad)
	}
}

func TestQuoteFromChart(t *testing.T) {
	t.Run("chart previous close fallback", func(t *testing.T) {
		q, err := QuoteFromChart(&dto.ChartResult{Meta: dto.ChartMeta{
			ShortName:           "TCS",
			RegularMarketPrice:  f64(3900.5),
			RegularMarketVolume: i64(120000),
			ChartPreviousClose:  f64(3850),
		}})
		require.NoError(t, err)
		assert.Equal(t, dto.QuotePoint{Price: 3900.5, Volume: 120000, PreviousClose: 3850, LongName: "TCS"}, q)
	})

	t.Run("zero volume is valid", func(t *testing.T) {
		q, err := QuoteFromChart(&dto.ChartResult{Meta: dto.ChartMeta{
			RegularMarketPrice:  f64(100),
			RegularMarketVolume: i64(0),
			PreviousClose:       f64(95),
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.Volume)
	})

	t.Run("missing volume", func(t *testing.T) {
		_, err := QuoteFromChart(&dto.ChartResult{Meta: dto.ChartMeta{
			RegularMarketPrice: f64(100),
			PreviousClose:      f64(95),
		}})
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("non positive price", func(t *testing.T) {
		_, err := QuoteFromChart(&dto.ChartResult{Meta: dto.ChartMeta{
			RegularMarketPrice:  f64(0),
			RegularMarketVolume: i64(10),
			PreviousClose:       f64(95),
		}})
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestSeriesFromChart(t *testing.T) {
	res := &dto.ChartResult{
		Timestamp: []int64{1717385400, 1717471800, 1717558200},
		Indicators: dto.ChartIndicators{Quote: []dto.ChartQuote{{
			Close:  []*float64{f64(10), nil, f64(12)},
			Volume: []*int64{i64(100), i64(200), nil},
		}}},
	}

	series := SeriesFromChart(res)
	require.Len(t, series, 2)
	assert.Equal(t, 10.0, series[0].Close)
	assert.Equal(t, int64(100), series[0].Volume)
	assert.Equal(t, 12.0, series[1].Close)
	assert.Equal(t, int64(0), series[1].Volume)
	assert.Equal(t, time.Unix(1717558200, 0).Unix(), series[1].Timestamp.Unix())

	assert.Empty(t, SeriesFromChart(&dto.ChartResult{}))
	assert.Empty(t, SeriesFromChart(nil))
}

func TestFundamentalsFromSummary(t *testing.T) {
	snap, err := FundamentalsFromSummary(&dto.QuoteSummaryResult{
		Price: &dto.SummaryPrice{MarketCap: &dto.YahooValue{Raw: f64(15_000_000_000)}},
		SummaryDetail: &dto.SummaryDetail{
			TrailingPE: &dto.YahooValue{Raw: f64(28.456)},
			ForwardPE:  &dto.YahooValue{Raw: f64(0)},
		},
		FinancialData: &dto.SummaryFinancialData{DebtToEquity: &dto.YahooValue{Raw: f64(45.3)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "₹1500.00 Cr", snap.MarketCapDisplay)
	assert.Equal(t, dto.NewMetric(28.46), snap.TrailingPE)
	assert.Equal(t, dto.Unavailable(), snap.ForwardPE)
	assert.Equal(t, dto.NewMetric(0.45), snap.DebtToEquity)

	snap, err = FundamentalsFromSummary(&dto.QuoteSummaryResult{
		SummaryDetail: &dto.SummaryDetail{MarketCap: &dto.YahooValue{Raw: f64(10_000_000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "₹1.00 Cr", snap.MarketCapDisplay)
	assert.False(t, snap.TrailingPE.Valid)
	assert.False(t, snap.DebtToEquity.Valid)

	_, err = FundamentalsFromSummary(&dto.QuoteSummaryResult{SummaryDetail: &dto.SummaryDetail{}})
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestMarketDataService_HistoryUsesCompositeKey(t *testing.T) {
	yahoo := &fakeYahoo{chart: func(string, repository.ChartQuery) (*dto.ChartResult, error) {
		return &dto.ChartResult{
			Timestamp:  []int64{1717385400},
			Indicators: dto.ChartIndicators{Quote: []dto.ChartQuote{{Close: []*float64{f64(10)}, Volume: []*int64{i64(1)}}}},
		}, nil
	}}
	store := repository.NewMemoryCacheStore()
	cache, _ := newTestCache(store)
	svc := NewMarketDataService(yahoo, cache, logger.NewNop())
	ctx := context.Background()

	_, err := svc.History(ctx, "TCS", 30)
	require.NoError(t, err)
	_, err = svc.History(ctx, "TCS", 30)
	require.NoError(t, err)
	_, err = svc.History(ctx, "TCS", 200)
	require.NoError(t, err)

	require.Len(t, yahoo.charts, 2)
	assert.Equal(t, "1d", yahoo.charts[0].Interval)
	assert.Equal(t, 30*24*time.Hour, yahoo.charts[0].Period2.Sub(yahoo.charts[0].Period1))

	_, err = store.FindOne(ctx, "historical_data", "TCS_30")
	assert.NoError(t, err)
	_, err = store.FindOne(ctx, "historical_data", "TCS_200")
	assert.NoError(t, err)
}

func TestMarketDataService_EmptySeriesIsFailure(t *testing.T) {
	yahoo := &fakeYahoo{chart: func(string, repository.ChartQuery) (*dto.ChartResult, error) {
		return &dto.ChartResult{}, nil
	}}
	cache, _ := newTestCache(repository.NewMemoryCacheStore())
	svc := NewMarketDataService(yahoo, cache, logger.NewNop())

	_, err := svc.Intraday5D(context.Background(), "TCS")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func chartFixture() *dto.ChartResult {
	return &dto.ChartResult{
		Meta: dto.ChartMeta{
			LongName:            "Tata Consultancy Services Limited",
			RegularMarketPrice:  f64(3900),
			RegularMarketVolume: i64(120000),
			ChartPreviousClose:  f64(3850),
		},
		Timestamp:  []int64{1717385400},
		Indicators: dto.ChartIndicators{Quote: []dto.ChartQuote{{Close: []*float64{f64(3900)}, Volume: []*int64{i64(120000)}}}},
	}
}

func TestMarketDataService_CategoryTTLs(t *testing.T) {
	cases := []struct {
		name     string
		category string
		key      string
		ttl      time.Duration
		call     func(ctx context.Context, svc MarketDataService) error
	}{
		{"live quote", "live_quotes", "TCS", 30 * time.Minute, func(ctx context.Context, svc MarketDataService) error {
			_, err := svc.LiveQuote(ctx, "TCS")
			return err
		}},
		{"fundamentals", "fundamental_cache", "TCS", 30 * time.Minute, func(ctx context.Context, svc MarketDataService) error {
			_, err := svc.Fundamentals(ctx, "TCS")
			return err
		}},
		{"intraday 1d", "intraday_1d_data", "TCS_1d", 30 * time.Minute, func(ctx context.Context, svc MarketDataService) error {
			_, err := svc.Intraday1D(ctx, "TCS")
			return err
		}},
		{"intraday 5d", "intraday_5d_data", "TCS_5d", 30 * time.Minute, func(ctx context.Context, svc MarketDataService) error {
			_, err := svc.Intraday5D(ctx, "TCS")
			return err
		}},
		{"history", "historical_data", "TCS_30", 24 * time.Hour, func(ctx context.Context, svc MarketDataService) error {
			_, err := svc.History(ctx, "TCS", 30)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			yahoo := &fakeYahoo{
				chart: func(string, repository.ChartQuery) (*dto.ChartResult, error) {
					calls++
					return chartFixture(), nil
				},
				summary: func(string) (*dto.QuoteSummaryResult, error) {
					calls++
					return &dto.QuoteSummaryResult{Price: &dto.SummaryPrice{MarketCap: &dto.YahooValue{Raw: f64(15_000_000_000)}}}, nil
				},
			}
			store := repository.NewMemoryCacheStore()
			cache, clk := newTestCache(store)
			svc := NewMarketDataService(yahoo, cache, logger.NewNop())
			ctx := context.Background()

			require.NoError(t, tc.call(ctx, svc))
			require.Equal(t, 1, calls)
			_, err := store.FindOne(ctx, tc.category, tc.key)
			require.NoError(t, err)

			clk.advance(tc.ttl - time.Minute)
			require.NoError(t, tc.call(ctx, svc))
			assert.Equal(t, 1, calls, "refetched before %s", tc.ttl)

			clk.advance(2 * time.Minute)
			require.NoError(t, tc.call(ctx, svc))
			assert.Equal(t, 2, calls, "served past %s", tc.ttl)
		})
	}
}

func TestMarketDataService_IntradayQueries(t *testing.T) {
	yahoo := &fakeYahoo{chart: func(string, repository.ChartQuery) (*dto.ChartResult, error) {
		return chartFixture(), nil
	}}
	cache, clk := newTestCache(repository.NewMemoryCacheStore())
	svc := NewMarketDataService(yahoo, cache, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Intraday1D(ctx, "TCS")
	require.NoError(t, err)
	_, err = svc.Intraday5D(ctx, "TCS")
	require.NoError(t, err)
	_, err = svc.LiveQuote(ctx, "TCS")
	require.NoError(t, err)

	require.Len(t, yahoo.charts, 3)

	oneDay := yahoo.charts[0]
	assert.Equal(t, "5m", oneDay.Interval)
	assert.Empty(t, oneDay.Range)
	assert.True(t, time.Date(2024, 6, 3, 9, 15, 0, 0, utils.MarketLocation()).Equal(oneDay.Period1), "session open, got %s", oneDay.Period1)
	assert.True(t, clk.t.Equal(oneDay.Period2), "now, got %s", oneDay.Period2)

	fiveDay := yahoo.charts[1]
	assert.Equal(t, "15m", fiveDay.Interval)
	assert.Equal(t, "5d", fiveDay.Range)
	assert.True(t, fiveDay.Period1.IsZero())

	live := yahoo.charts[2]
	assert.Equal(t, "1d", live.Interval)
	assert.Equal(t, "1d", live.Range)
}
