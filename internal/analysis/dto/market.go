package dto

import (
	"time"
)

// QuotePoint is one live or end-of-day snapshot.
type QuotePoint struct {
	Price         float64 `json:"Close"`
	Volume        int64   `json:"Volume"`
	PreviousClose float64 `json:"Previous_Close"`
	LongName      string  `json:"long_name,omitempty"`
}

// PricePoint is one bar of a price series.
type PricePoint struct {
	Timestamp time.Time `json:"date"`
	Close     float64   `json:"Close"`
	Volume    int64     `json:"Volume"`
}

// PriceSeries is ordered by timestamp ascending.
type PriceSeries []PricePoint

// Closes returns the close prices in order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Tail returns the last n points, or the whole series when it is shorter.
func (s PriceSeries) Tail(n int) PriceSeries {
	if n < 0 {
		n = 0
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// LastClose returns the close of the final point.
func (s PriceSeries) LastClose() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Close, true
}

// ChartPoint is a presentation point of a multi-horizon chart.
type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// FundamentalSnapshot carries fundamentals, each either a number or unavailable.
type FundamentalSnapshot struct {
	MarketCapDisplay string `json:"MarketCap"`
	MarketCap        Metric `json:"MarketCapValue"`
	TrailingPE       Metric `json:"TrailingPE"`
	ForwardPE        Metric `json:"ForwardPE"`
	DebtToEquity     Metric `json:"DebtToEquity"`
}
