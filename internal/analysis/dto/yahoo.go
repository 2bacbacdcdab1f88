package dto

// ChartResponse is the v8 chart endpoint body.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *YahooError   `json:"error"`
	} `json:"chart"`
}

type ChartResult struct {
	Meta       ChartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators ChartIndicators `json:"indicators"`
}

type ChartMeta struct {
	Symbol               string   `json:"symbol"`
	LongName             string   `json:"longName"`
	ShortName            string   `json:"shortName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	RegularMarketVolume  *int64   `json:"regularMarketVolume"`
	PreviousClose        *float64 `json:"previousClose"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	RegularMarketTime    int64    `json:"regularMarketTime"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
}

type ChartIndicators struct {
	Quote []ChartQuote `json:"quote"`
}

type ChartQuote struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// QuoteSummaryResponse is the v10 quoteSummary endpoint body.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *YahooError          `json:"error"`
	} `json:"quoteSummary"`
}

type QuoteSummaryResult struct {
	Price         *SummaryPrice         `json:"price"`
	SummaryDetail *SummaryDetail        `json:"summaryDetail"`
	FinancialData *SummaryFinancialData `json:"financialData"`
}

type SummaryPrice struct {
	LongName  string      `json:"longName"`
	ShortName string      `json:"shortName"`
	MarketCap *YahooValue `json:"marketCap"`
}

type SummaryDetail struct {
	MarketCap  *YahooValue `json:"marketCap"`
	TrailingPE *YahooValue `json:"trailingPE"`
	ForwardPE  *YahooValue `json:"forwardPE"`
}

type SummaryFinancialData struct {
	DebtToEquity *YahooValue `json:"debtToEquity"`
}

// YahooValue is the {raw, fmt} pair used by quoteSummary.
type YahooValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// Get returns the raw value when present.
func (v *YahooValue) Get() (float64, bool) {
	if v == nil || v.Raw == nil {
		return 0, false
	}
	return *v.Raw, true
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
