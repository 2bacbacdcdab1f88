package service

import (
	"context"
	"fmt"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const (
	minShortHorizonPoints = 50
	movingAverageWindow   = 50
	yearTradingDays       = 250
	halfYearTradingDays   = 120
	weekTradingDays       = 5

	strongBuyMaxPE = 30.0
	strongBuyMaxDE = 1.0
	avoidSellMinPE = 50.0

	reasonInsufficient = "Not enough data (price history/latest price) for Technical Analysis."
	reasonMixed        = "Signals are mixed or incomplete. Further research is recommended."
)

// AdviceService builds the full analysis for one symbol.
type AdviceService interface {
	Advise(ctx context.Context, symbol string) (*dto.Advice, error)
}

type adviceService struct {
	cfg       *config.Config
	market    MarketDataService
	sentiment SentimentService
	log       *logger.Logger
}

func NewAdviceService(cfg *config.Config, market MarketDataService, sentiment SentimentService, log *logger.Logger) AdviceService {
	return &adviceService{cfg: cfg, market: market, sentiment: sentiment, log: log}
}

// signals is everything fetched for one symbol. A value is usable when its error is nil.
type signals struct {
	long            dto.PriceSeries
	longErr         error
	short           dto.PriceSeries
	shortErr        error
	intraday1D      dto.PriceSeries
	intraday1DErr   error
	intraday5D      dto.PriceSeries
	intraday5DErr   error
	live            dto.QuotePoint
	liveErr         error
	fundamentals    dto.FundamentalSnapshot
	fundamentalsErr error
	sentiment       dto.SentimentResult
}

func (s *adviceService) Advise(ctx context.Context, symbol string) (*dto.Advice, error) {
	symbol, err := ValidateSymbol(symbol)
	if err != nil {
		return nil, err
	}

	sig := s.collect(ctx, symbol)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("advise %s: %w", symbol, err)
	}
	return decide(symbol, sig), nil
}

func (s *adviceService) collect(ctx context.Context, symbol string) *signals {
	sig := &signals{}

	// every task records its own outcome and never fails the group
	var g errgroup.Group
	g.Go(func() error {
		sig.long, sig.longErr = s.market.History(ctx, symbol, s.cfg.Advice.LongHorizonDays)
		return nil
	})
	g.Go(func() error {
		sig.short, sig.shortErr = s.market.History(ctx, symbol, s.cfg.Advice.ShortHorizonDays)
		return nil
	})
	g.Go(func() error {
		sig.intraday1D, sig.intraday1DErr = s.market.Intraday1D(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		sig.intraday5D, sig.intraday5DErr = s.market.Intraday5D(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		sig.live, sig.liveErr = s.market.LiveQuote(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		sig.fundamentals, sig.fundamentalsErr = s.market.Fundamentals(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		res, err := s.sentiment.Analyze(ctx, symbol)
		if err != nil {
			s.log.WarnContext(ctx, "Sentiment unavailable, using neutral", logger.StringField("symbol", symbol), logger.ErrorField(err))
			res = dto.NeutralSentiment()
		}
		sig.sentiment = res
		return nil
	})
	g.Wait()

	return sig
}

// decide resolves prices, applies the insufficient-data gate, then the first matching rule.
func decide(symbol string, sig *signals) *dto.Advice {
	shortOK := sig.shortErr == nil && len(sig.short) > 0

	var latest, prev float64
	var haveLatest, havePrev bool
	eod, haveEOD := 0.0, false
	if shortOK {
		eod, haveEOD = sig.short.LastClose()
	}

	if sig.liveErr == nil {
		latest, haveLatest = sig.live.Price, true
		prev, havePrev = sig.live.PreviousClose, true
	} else {
		latest, haveLatest = eod, haveEOD
		switch {
		case shortOK && len(sig.short) > 1:
			prev, havePrev = sig.short[len(sig.short)-2].Close, true
		case haveEOD:
			// degenerate: previous close equals the latest price
			prev, havePrev = eod, true
		}
	}

	todayChange := 0.0
	if haveLatest && havePrev && latest != 0 && prev != 0 {
		todayChange = (latest - prev) / prev * 100
	}

	advice := &dto.Advice{
		Symbol:             symbol,
		SentimentScore:     sig.sentiment.Score,
		SentimentStatus:    sig.sentiment.Label,
		LatestNews:         sig.sentiment.Headlines,
		HistoricalData:     map[string][]dto.ChartPoint{},
		AdditionalMetrics:  map[string]string{},
		TodayChangePercent: utils.Round(todayChange, 2),
	}
	if advice.LatestNews == nil {
		advice.LatestNews = []dto.Headline{}
	}
	if sig.fundamentalsErr == nil {
		f := sig.fundamentals
		advice.Fundamentals.Snapshot = &f
	}
	if haveLatest {
		advice.LatestPrice = utils.Round(latest, 2)
	}

	if !shortOK || len(sig.short) < minShortHorizonPoints || !haveLatest {
		setVerdict(advice, dto.VerdictHoldInsufficientData, reasonInsufficient, dto.RiskMedium)
		return advice
	}

	closes := sig.short.Closes()
	year := closes
	if len(year) > yearTradingDays {
		year = year[len(year)-yearTradingDays:]
	}
	high, low := minMax(year)
	advice.AdditionalMetrics["52W High"] = utils.FormatRupee(utils.Round(high, 2))
	advice.AdditionalMetrics["52W Low"] = utils.FormatRupee(utils.Round(low, 2))

	advice.HistoricalData = horizons(sig)

	ma50 := mean(closes[len(closes)-movingAverageWindow:])
	aboveMA := latest > ma50
	pe := dto.Unavailable()
	de := dto.Unavailable()
	if sig.fundamentalsErr == nil {
		pe = sig.fundamentals.TrailingPE
		de = sig.fundamentals.DebtToEquity
	}
	label := sig.sentiment.Label

	switch {
	case aboveMA && label == dto.SentimentPositive && pe.LessThan(strongBuyMaxPE) && de.LessThan(strongBuyMaxDE):
		setVerdict(advice, dto.VerdictStrongBuy,
			fmt.Sprintf("Price Above MA50 (%.2f), Fundamentals Strong (PE:%s, D/E:%s), and News Sentiment is Positive.", ma50, pe, de),
			dto.RiskLow)
	case !aboveMA && label == dto.SentimentNegative && pe.GreaterThan(avoidSellMinPE):
		setVerdict(advice, dto.VerdictAvoidSell,
			fmt.Sprintf("Price Below MA50 (%.2f), News Negative, and High PE (%s).", ma50, pe),
			dto.RiskHigh)
	default:
		setVerdict(advice, dto.VerdictHoldCaution, reasonMixed, dto.RiskMedium)
	}
	return advice
}

func setVerdict(a *dto.Advice, v dto.Verdict, reason, risk string) {
	a.Verdict = v
	a.Label = v.Label()
	a.Reason = reason
	a.RiskLevel = risk
}

func horizons(sig *signals) map[string][]dto.ChartPoint {
	out := map[string][]dto.ChartPoint{}

	daily := sig.long
	if sig.longErr != nil || len(daily) == 0 {
		daily = sig.short
	}

	if sig.intraday1DErr == nil && len(sig.intraday1D) > 0 {
		out[dto.Horizon1Day] = chartPoints(sig.intraday1D, utils.FormatIntraday)
	} else if len(daily) > 0 {
		out[dto.Horizon1Day] = chartPoints(daily.Tail(1), utils.FormatDay)
	}

	if sig.intraday5DErr == nil && len(sig.intraday5D) > 0 {
		out[dto.Horizon1Week] = chartPoints(sig.intraday5D, utils.FormatIntraday)
	} else if len(daily) > 0 {
		out[dto.Horizon1Week] = chartPoints(daily.Tail(weekTradingDays), utils.FormatDay)
	}

	if sig.longErr == nil && len(sig.long) > 0 {
		out[dto.Horizon6Months] = chartPoints(sig.long.Tail(halfYearTradingDays), utils.FormatDay)
		out[dto.Horizon1Year] = chartPoints(sig.long.Tail(yearTradingDays), utils.FormatDay)
		out[dto.Horizon5Year] = chartPoints(sig.long, utils.FormatDay)
	}
	return out
}

func chartPoints(series dto.PriceSeries, format func(t time.Time) string) []dto.ChartPoint {
	points := make([]dto.ChartPoint, len(series))
	for i, p := range series {
		points[i] = dto.ChartPoint{Date: format(p.Timestamp), Price: utils.Round(p.Close, 2)}
	}
	return points
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	high, low := values[0], values[0]
	for _, v := range values[1:] {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low
}
