package dto

import (
	"encoding/json"
	"time"
)

// Sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// NewsItem is one entry of the news feed.
type NewsItem struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	Link        string     `json:"link"`
	PublishedAt *time.Time `json:"published,omitempty"`
}

// Headline is a scored news item as exposed in results.
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
}

// SentimentResult is the aggregate polarity of recent headlines.
type SentimentResult struct {
	Label         string     `json:"sentiment"`
	Score         float64    `json:"score"`
	HeadlineCount int        `json:"news_count"`
	Headlines     []Headline `json:"news_headlines"`
}

// NeutralSentiment is the zero-headline result.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: SentimentNeutral, Headlines: []Headline{}}
}

// TrendingCandidate is one ranked symbol.
type TrendingCandidate struct {
	Symbol             string  `json:"ticker"`
	DisplayName        string  `json:"name"`
	CurrentPrice       float64 `json:"current_price"`
	TodayChangePercent float64 `json:"today_change_percent"`
	VolumeFactor       float64 `json:"volume_factor"`
	PriceChange5D      float64 `json:"price_change_5d"`
	Reason             string  `json:"reason"`
}

// Verdict is the machine form of a recommendation.
type Verdict string

const (
	VerdictStrongBuy            Verdict = "STRONG_BUY"
	VerdictAvoidSell            Verdict = "AVOID_SELL"
	VerdictHoldCaution          Verdict = "HOLD_CAUTION"
	VerdictHoldInsufficientData Verdict = "HOLD_INSUFFICIENT_DATA"
)

// Label is the human wording shown to users.
func (v Verdict) Label() string {
	switch v {
	case VerdictStrongBuy:
		return "STRONG BUY"
	case VerdictAvoidSell:
		return "AVOID / SELL"
	case VerdictHoldCaution:
		return "HOLD / CAUTION"
	default:
		return "HOLD"
	}
}

// Risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Chart horizons.
const (
	Horizon1Day    = "1 Day"
	Horizon1Week   = "1 Week"
	Horizon6Months = "6 Months"
	Horizon1Year   = "1 Year"
	Horizon5Year   = "5 Year"
)

// FundamentalsView renders a snapshot, or a status object when none was obtained.
type FundamentalsView struct {
	Snapshot *FundamentalSnapshot
}

const fundamentalsUnavailable = "Fundamental data unavailable."

func (f FundamentalsView) MarshalJSON() ([]byte, error) {
	if f.Snapshot == nil {
		return json.Marshal(map[string]string{"status": fundamentalsUnavailable})
	}
	return json.Marshal(f.Snapshot)
}

// Advice is the full analysis payload for one symbol.
type Advice struct {
	Symbol             string                  `json:"symbol"`
	Verdict            Verdict                 `json:"verdict"`
	Label              string                  `json:"advice"`
	Reason             string                  `json:"reason_summary"`
	RiskLevel          string                  `json:"risk_level"`
	Fundamentals       FundamentalsView        `json:"fundamentals"`
	SentimentScore     float64                 `json:"sentiment_score"`
	SentimentStatus    string                  `json:"sentiment_status"`
	LatestNews         []Headline              `json:"latest_news"`
	HistoricalData     map[string][]ChartPoint `json:"historical_data"`
	AdditionalMetrics  map[string]string       `json:"additional_metrics"`
	LatestPrice        float64                 `json:"latest_price"`
	TodayChangePercent float64                 `json:"today_change_percent"`
}
