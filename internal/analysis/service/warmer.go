package service

import (
	"context"
	"fmt"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/telegram"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"github.com/robfig/cron/v3"
)

// CacheWarmer periodically runs the trending ranking so the live-quote and
// historical entries of the universe are refreshed ahead of user traffic.
type CacheWarmer struct {
	cfg      *config.Config
	trending TrendingService
	notifier telegram.Notifier
	log      *logger.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewCacheWarmer parses the schedule in market time. notifier may be nil.
func NewCacheWarmer(cfg *config.Config, trending TrendingService, notifier telegram.Notifier, log *logger.Logger) (*CacheWarmer, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.Warmer.Schedule); err != nil {
		return nil, fmt.Errorf("parse warmer schedule %q: %w", cfg.Warmer.Schedule, err)
	}
	return &CacheWarmer{
		cfg:      cfg,
		trending: trending,
		notifier: notifier,
		log:      log,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(utils.MarketLocation()),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		now: time.Now,
	}, nil
}

// Start schedules the warm-up runs. Runs use ctx and stop when it is done.
func (w *CacheWarmer) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.cfg.Warmer.Schedule, func() {
		if ctx.Err() != nil {
			return
		}
		err := utils.CatchPanic(func() error { return w.Warm(ctx) })
		if err != nil {
			w.log.ErrorContext(ctx, "Cache warm-up failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule warmer: %w", err)
	}
	w.cron.Start()
	w.log.Info("Cache warmer started", logger.StringField("schedule", w.cfg.Warmer.Schedule))
	return nil
}

// Stop prevents new runs and returns a context done when the running one ends.
func (w *CacheWarmer) Stop() context.Context {
	return w.cron.Stop()
}

// Warm runs one ranking pass and posts the digest when notification is on.
func (w *CacheWarmer) Warm(ctx context.Context) error {
	started := w.now()
	candidates, err := w.trending.RankTrending(ctx)
	if err != nil {
		return fmt.Errorf("warm trending: %w", err)
	}
	w.log.InfoContext(ctx, "Cache warm-up finished",
		logger.IntField("candidates", len(candidates)),
		logger.DurationField("elapsed", w.now().Sub(started)))

	if !w.cfg.Warmer.Notify || w.notifier == nil {
		return nil
	}
	if n := w.cfg.Warmer.TopN; len(candidates) > n {
		candidates = candidates[:n]
	}
	if err := telegram.SendAll(w.notifier, telegram.FormatTrendingDigest(candidates, started)); err != nil {
		// the cache is already warm, a lost digest is only logged
		w.log.WarnContext(ctx, "Failed to send trending digest", logger.ErrorField(err))
	}
	return nil
}
