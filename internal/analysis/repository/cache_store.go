package repository

import (
	"context"
	"errors"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/entity"
)

// ErrCacheMiss is returned when no entry exists for the (category, key) pair.
var ErrCacheMiss = errors.New("cache entry not found")

// CacheStore is the durable key/value/timestamp store behind the stale cache.
type CacheStore interface {
	// FindOne returns the entry or ErrCacheMiss.
	FindOne(ctx context.Context, category, key string) (*entity.CacheEntry, error)
	// ReplaceUpsert creates or overwrites the entry in place.
	ReplaceUpsert(ctx context.Context, entry *entity.CacheEntry) error
}
