package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saturday keeps the source label on end-of-day.
var saturday = time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC)

func trendingConfig() *config.Config {
	cfg := config.Default()
	cfg.Trending.Delay = 0
	cfg.Trending.Workers = 4
	cfg.Trending.VolumeFilter = false
	return cfg
}

func symbols(candidates []dto.TrendingCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Symbol
	}
	return out
}

func TestTrendingService_RanksByVolumeFactor(t *testing.T) {
	history := dailySeries(30, saturday, flat(100), 1000)
	market := &fakeMarket{
		now: saturday,
		live: map[string]dto.QuotePoint{
			"ALPHA": {Price: 110, Volume: 3000, PreviousClose: 100, LongName: "Alpha Industries Limited"},
			"BETA":  {Price: 100, Volume: 1500, PreviousClose: 100},
			"QUIET": {Price: 100, Volume: 0, PreviousClose: 95},
			"ZERO":  {Price: 100, Volume: 5000, PreviousClose: 100},
			"SHORT": {Price: 100, Volume: 5000, PreviousClose: 100},
		},
		history: map[string]dto.PriceSeries{
			"ALPHA": history,
			"BETA":  history,
			"QUIET": history,
			"ZERO":  dailySeries(30, saturday, flat(100), 0),
			"SHORT": dailySeries(19, saturday, flat(100), 1000),
			"BOOM":  history,
		},
		panicOn: "BOOM",
	}
	svc := NewTrendingService(trendingConfig(), market, fakeUniverse{"QUIET", "BETA", "BOOM", "ZERO", "alpha.ns", "SHORT", "MISSING"}, logger.NewNop())

	got, err := svc.RankTrending(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ALPHA", "BETA", "QUIET"}, symbols(got))

	alpha := got[0]
	assert.Equal(t, "Alpha Industries Limited", alpha.DisplayName)
	assert.Equal(t, 110.0, alpha.CurrentPrice)
	assert.Equal(t, 3.0, alpha.VolumeFactor)
	assert.Equal(t, 10.0, alpha.TodayChangePercent)
	assert.Equal(t, 10.0, alpha.PriceChange5D)
	assert.Equal(t, "Volume (3000) vs Avg (1000) - Momentum (10.00%) (Source: "+common.DataSourceEOD+")", alpha.Reason)

	assert.Equal(t, "BETA Ltd.", got[1].DisplayName)
	assert.Equal(t, 1.5, got[1].VolumeFactor)

	// zero live volume is floored to one share
	assert.Equal(t, 0.001, got[2].VolumeFactor)
	assert.Equal(t, 5.26, got[2].TodayChangePercent)
}

func TestTrendingService_TruncatesAndKeepsTieOrder(t *testing.T) {
	history := dailySeries(20, saturday, flat(50), 200)
	market := &fakeMarket{now: saturday, live: map[string]dto.QuotePoint{}, history: map[string]dto.PriceSeries{}}
	var universe []string
	for i := 0; i < 35; i++ {
		sym := fmt.Sprintf("S%02d", i)
		universe = append(universe, sym)
		market.live[sym] = dto.QuotePoint{Price: 50, Volume: 400, PreviousClose: 50}
		market.history[sym] = history
	}
	svc := NewTrendingService(trendingConfig(), market, nil, logger.NewNop())

	got, err := svc.Rank(context.Background(), universe)
	require.NoError(t, err)
	assert.Equal(t, universe[:30], symbols(got))
}

func TestTrendingService_VolumeFilter(t *testing.T) {
	history := dailySeries(20, saturday, flat(50), 1000)
	market := &fakeMarket{
		now: saturday,
		live: map[string]dto.QuotePoint{
			"HOT":  {Price: 50, Volume: 2000, PreviousClose: 50},
			"COLD": {Price: 50, Volume: 1100, PreviousClose: 50},
		},
		history: map[string]dto.PriceSeries{"HOT": history, "COLD": history},
	}
	cfg := trendingConfig()
	cfg.Trending.VolumeFilter = true
	cfg.Trending.MinVolumeFactor = 1.5
	svc := NewTrendingService(cfg, market, nil, logger.NewNop())

	got, err := svc.Rank(context.Background(), []string{"COLD", "HOT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HOT"}, symbols(got))
}

func TestTrendingService_EmptyWhenNothingQualifies(t *testing.T) {
	svc := NewTrendingService(trendingConfig(), &fakeMarket{now: saturday}, nil, logger.NewNop())

	got, err := svc.Rank(context.Background(), []string{"GONE"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTrendingService_CancelledContext(t *testing.T) {
	svc := NewTrendingService(trendingConfig(), &fakeMarket{now: saturday}, nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Rank(ctx, []string{"TCS"})
	assert.ErrorIs(t, err, context.Canceled)
}
