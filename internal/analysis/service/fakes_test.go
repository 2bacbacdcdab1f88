package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
)

var errProviderDown = errors.New("provider down")

type fakeYahoo struct {
	mu      sync.Mutex
	charts  []repository.ChartQuery
	chart   func(symbol string, q repository.ChartQuery) (*dto.ChartResult, error)
	summary func(symbol string) (*dto.QuoteSummaryResult, error)
}

func (f *fakeYahoo) GetChart(_ context.Context, symbol string, q repository.ChartQuery) (*dto.ChartResult, error) {
	f.mu.Lock()
	f.charts = append(f.charts, q)
	f.mu.Unlock()
	return f.chart(symbol, q)
}

func (f *fakeYahoo) GetQuoteSummary(_ context.Context, symbol string) (*dto.QuoteSummaryResult, error) {
	return f.summary(symbol)
}

type fakeNews struct {
	items []dto.NewsItem
	err   error
}

func (f *fakeNews) Search(_ context.Context, _ string) ([]dto.NewsItem, error) {
	return f.items, f.err
}

// fakeModel scores headlines from a fixed table.
type fakeModel map[string]float64

func (m fakeModel) Compound(text string) float64 {
	return m[text]
}

type fakeUniverse []string

func (u fakeUniverse) GetUniverse(_ context.Context) []string {
	return u
}

// fakeMarket serves canned values per symbol; a missing entry is a fetch failure.
type fakeMarket struct {
	now        time.Time
	live       map[string]dto.QuotePoint
	history    map[string]dto.PriceSeries
	intraday1D map[string]dto.PriceSeries
	intraday5D map[string]dto.PriceSeries
	funds      map[string]dto.FundamentalSnapshot
	panicOn    string
}

func (f *fakeMarket) LiveQuote(_ context.Context, symbol string) (dto.QuotePoint, error) {
	if symbol == f.panicOn {
		panic("quote decoder exploded")
	}
	if q, ok := f.live[symbol]; ok {
		return q, nil
	}
	return dto.QuotePoint{}, ErrFetchFailed
}

func (f *fakeMarket) History(_ context.Context, symbol string, _ int) (dto.PriceSeries, error) {
	if s, ok := f.history[symbol]; ok {
		return s, nil
	}
	return nil, ErrFetchFailed
}

func (f *fakeMarket) Intraday1D(_ context.Context, symbol string) (dto.PriceSeries, error) {
	if s, ok := f.intraday1D[symbol]; ok {
		return s, nil
	}
	return nil, ErrFetchFailed
}

func (f *fakeMarket) Intraday5D(_ context.Context, symbol string) (dto.PriceSeries, error) {
	if s, ok := f.intraday5D[symbol]; ok {
		return s, nil
	}
	return nil, ErrFetchFailed
}

func (f *fakeMarket) Fundamentals(_ context.Context, symbol string) (dto.FundamentalSnapshot, error) {
	if s, ok := f.funds[symbol]; ok {
		return s, nil
	}
	return dto.FundamentalSnapshot{}, ErrFetchFailed
}

func (f *fakeMarket) Now() time.Time {
	return f.now
}

type fakeSentiment struct {
	result dto.SentimentResult
	err    error
}

func (f *fakeSentiment) Analyze(_ context.Context, _ string) (dto.SentimentResult, error) {
	return f.result, f.err
}

// dailySeries builds n daily bars ending the day before end.
func dailySeries(n int, end time.Time, closeAt func(i int) float64, volume int64) dto.PriceSeries {
	s := make(dto.PriceSeries, n)
	for i := 0; i < n; i++ {
		s[i] = dto.PricePoint{
			Timestamp: end.AddDate(0, 0, i-n),
			Close:     closeAt(i),
			Volume:    volume,
		}
	}
	return s
}

func flat(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }
