package repository

import (
	"context"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/entity"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCacheStore struct {
	cache *gocache.Cache
}

// NewMemoryCacheStore keeps entries in process memory without expiry.
func NewMemoryCacheStore() CacheStore {
	return &memoryCacheStore{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (s *memoryCacheStore) FindOne(_ context.Context, category, key string) (*entity.CacheEntry, error) {
	v, ok := s.cache.Get(category + "\x00" + key)
	if !ok {
		return nil, ErrCacheMiss
	}
	entry := v.(entity.CacheEntry)
	entry.Data = append([]byte(nil), entry.Data...)
	return &entry, nil
}

func (s *memoryCacheStore) ReplaceUpsert(_ context.Context, entry *entity.CacheEntry) error {
	stored := *entry
	stored.Data = append([]byte(nil), entry.Data...)
	s.cache.Set(entry.Category+"\x00"+entry.Key, stored, gocache.NoExpiration)
	return nil
}
