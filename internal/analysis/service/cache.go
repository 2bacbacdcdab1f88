package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/entity"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
)

// ErrFetchFailed marks a provider fetch that returned nothing usable.
var ErrFetchFailed = errors.New("provider fetch failed")

// StaleCache serves fresh entries from the store, refreshes expired ones,
// and falls back to the last good payload when a refresh fails. A nil store
// makes every lookup a miss and nothing is persisted.
type StaleCache struct {
	store        repository.CacheStore
	log          *logger.Logger
	fetchTimeout time.Duration
	now          func() time.Time
}

// NewStaleCache creates a cache over store, which may be nil.
func NewStaleCache(store repository.CacheStore, log *logger.Logger, fetchTimeout time.Duration) *StaleCache {
	return &StaleCache{
		store:        store,
		log:          log,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// WithClock replaces the clock used for freshness checks.
func (c *StaleCache) WithClock(now func() time.Time) *StaleCache {
	c.now = now
	return c
}

// Now returns the cache clock's current time.
func (c *StaleCache) Now() time.Time {
	return c.now()
}

// PassThrough reports whether the cache runs without a store.
func (c *StaleCache) PassThrough() bool {
	return c.store == nil
}

// GetOrRefresh returns the cached payload for (category, key) while it is
// younger than ttl, otherwise calls fetch. A failed fetch yields the previous
// payload when one exists, or an error wrapping ErrFetchFailed. Failures are
// never written to the store.
func GetOrRefresh[T any](ctx context.Context, c *StaleCache, category, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	cached, fetchedAt, haveCached := lookup[T](ctx, c, category, key)
	if haveCached && c.now().Before(fetchedAt.Add(ttl)) {
		return cached, nil
	}

	value, err := callFetch(ctx, c.fetchTimeout, fetch)
	if err != nil {
		if haveCached {
			c.log.WarnContext(ctx, "Refresh failed, serving stale cache entry",
				logger.StringField("category", category),
				logger.StringField("key", key),
				logger.Field("fetched_at", fetchedAt),
				logger.ErrorField(err))
			return cached, nil
		}
		c.log.ErrorContext(ctx, "Refresh failed and no cache entry is available",
			logger.StringField("category", category),
			logger.StringField("key", key),
			logger.ErrorField(err))
		if !errors.Is(err, ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return zero, err
	}

	if c.store != nil {
		persist(ctx, c, category, key, value)
	}
	return value, nil
}

func lookup[T any](ctx context.Context, c *StaleCache, category, key string) (T, time.Time, bool) {
	var value T
	if c.store == nil {
		return value, time.Time{}, false
	}

	entry, err := c.store.FindOne(ctx, category, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			c.log.WarnContext(ctx, "Failed to read cache entry, treating as miss",
				logger.StringField("category", category),
				logger.StringField("key", key),
				logger.ErrorField(err))
		}
		return value, time.Time{}, false
	}

	if err := json.Unmarshal(entry.Data, &value); err != nil {
		c.log.WarnContext(ctx, "Failed to decode cache entry, treating as miss",
			logger.StringField("category", category),
			logger.StringField("key", key),
			logger.ErrorField(err))
		var zero T
		return zero, time.Time{}, false
	}
	return value, entry.FetchedAt, true
}

func callFetch[T any](ctx context.Context, timeout time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fetch(fetchCtx)
}

func persist[T any](ctx context.Context, c *StaleCache, category, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to encode cache entry",
			logger.StringField("category", category),
			logger.StringField("key", key),
			logger.ErrorField(err))
		return
	}

	entry := &entity.CacheEntry{
		Category:  category,
		Key:       key,
		Data:      data,
		FetchedAt: c.now(),
	}
	if err := c.store.ReplaceUpsert(ctx, entry); err != nil {
		c.log.ErrorContext(ctx, "Failed to write cache entry",
			logger.StringField("category", category),
			logger.StringField("key", key),
			logger.ErrorField(err))
	}
}
