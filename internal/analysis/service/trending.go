package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	avgVolumeWindow = 20
	momentumLag     = 5
)

var errSkipSymbol = errors.New("symbol skipped")

// TrendingService ranks a universe of symbols by volume surge.
type TrendingService interface {
	// RankTrending ranks the configured index universe.
	RankTrending(ctx context.Context) ([]dto.TrendingCandidate, error)
	// Rank ranks the given symbols in iteration order for ties.
	Rank(ctx context.Context, universe []string) ([]dto.TrendingCandidate, error)
}

type trendingService struct {
	cfg      *config.Config
	market   MarketDataService
	universe repository.UniverseRepository
	log      *logger.Logger
	throttle *rate.Limiter
	names    *gocache.Cache
}

func NewTrendingService(cfg *config.Config, market MarketDataService, universe repository.UniverseRepository, log *logger.Logger) TrendingService {
	return &trendingService{
		cfg:      cfg,
		market:   market,
		universe: universe,
		log:      log,
		// one symbol per delay across all workers and requests
		throttle: rate.NewLimiter(rate.Every(cfg.Trending.Delay), 1),
		names:    gocache.New(cfg.Trending.DisplayNameCacheFor, time.Hour),
	}
}

func (s *trendingService) RankTrending(ctx context.Context) ([]dto.TrendingCandidate, error) {
	return s.Rank(ctx, s.universe.GetUniverse(ctx))
}

func (s *trendingService) Rank(ctx context.Context, universe []string) ([]dto.TrendingCandidate, error) {
	started := time.Now()
	sourceLabel := utils.DataSourceLabel(s.market.Now())
	slots := make([]*dto.TrendingCandidate, len(universe))

	var g errgroup.Group
	g.SetLimit(s.cfg.Trending.Workers)
	for i, raw := range universe {
		g.Go(func() error {
			if err := s.throttle.Wait(ctx); err != nil {
				return err
			}
			err := utils.CatchPanic(func() error {
				c, err := s.evaluate(ctx, utils.NormalizeSymbol(raw), sourceLabel)
				if err != nil {
					return err
				}
				slots[i] = c
				return nil
			})
			if err != nil {
				s.log.InfoContext(ctx, "Skipping symbol", logger.StringField("symbol", raw), logger.ErrorField(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank trending: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank trending: %w", err)
	}

	candidates := make([]dto.TrendingCandidate, 0, len(universe))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].VolumeFactor > candidates[b].VolumeFactor
	})
	if limit := s.cfg.Trending.MaxResults; len(candidates) > limit {
		candidates = candidates[:limit]
	}

	s.log.InfoContext(ctx, "Ranked trending stocks",
		logger.IntField("universe", len(universe)),
		logger.IntField("results", len(candidates)),
		logger.DurationField("elapsed", time.Since(started)))
	return candidates, nil
}

func (s *trendingService) evaluate(ctx context.Context, symbol, sourceLabel string) (*dto.TrendingCandidate, error) {
	quote, err := s.market.LiveQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: live quote: %w", errSkipSymbol, err)
	}
	history, err := s.market.History(ctx, symbol, s.cfg.Trending.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("%w: history: %w", errSkipSymbol, err)
	}
	if len(history) < avgVolumeWindow {
		return nil, fmt.Errorf("%w: %d daily rows, need %d", errSkipSymbol, len(history), avgVolumeWindow)
	}

	avgVolume := meanVolume(history.Tail(avgVolumeWindow))
	if avgVolume <= 0 {
		return nil, fmt.Errorf("%w: average volume is zero", errSkipSymbol)
	}

	currentVolume := float64(quote.Volume)
	if currentVolume <= 0 {
		currentVolume = 1
	}
	volumeFactor := currentVolume / avgVolume

	closes := history.Closes()
	priceChange5D := utils.PercentChange(quote.Price, closes[len(closes)-momentumLag])
	todayChange := 0.0
	if quote.PreviousClose > 0 && quote.Price > 0 {
		todayChange = utils.PercentChange(quote.Price, quote.PreviousClose)
	}

	if s.cfg.Trending.VolumeFilter && volumeFactor < s.cfg.Trending.MinVolumeFactor {
		return nil, fmt.Errorf("%w: volume factor %.2f below %.2f", errSkipSymbol, volumeFactor, s.cfg.Trending.MinVolumeFactor)
	}

	return &dto.TrendingCandidate{
		Symbol:             symbol,
		DisplayName:        s.displayName(symbol, quote.LongName),
		CurrentPrice:       utils.Round(quote.Price, 2),
		TodayChangePercent: utils.Round(todayChange, 2),
		VolumeFactor:       utils.Round(volumeFactor, 4),
		PriceChange5D:      utils.Round(priceChange5D, 2),
		Reason: fmt.Sprintf("Volume (%.0f) vs Avg (%.0f) - Momentum (%.2f%%) (Source: %s)",
			currentVolume, avgVolume, priceChange5D, sourceLabel),
	}, nil
}

func (s *trendingService) displayName(symbol, longName string) string {
	if v, ok := s.names.Get(symbol); ok {
		return v.(string)
	}
	if longName == "" {
		return symbol + " Ltd."
	}
	s.names.SetDefault(symbol, longName)
	return longName
}

func meanVolume(series dto.PriceSeries) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range series {
		total += float64(p.Volume)
	}
	return total / float64(len(series))
}
