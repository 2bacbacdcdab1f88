package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/entity"

	"github.com/redis/go-redis/v9"
)

type redisCacheStore struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheStore stores each entry as a JSON document without expiry.
func NewRedisCacheStore(client *redis.Client, prefix string) CacheStore {
	return &redisCacheStore{client: client, prefix: prefix}
}

func (s *redisCacheStore) redisKey(category, key string) string {
	return RedisCacheKey(s.prefix, category, key)
}

// RedisCacheKey renders <prefix>:<category>:<key>.
func RedisCacheKey(prefix, category, key string) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s", category, key)
	}
	return fmt.Sprintf("%s:%s:%s", prefix, category, key)
}

func (s *redisCacheStore) FindOne(ctx context.Context, category, key string) (*entity.CacheEntry, error) {
	raw, err := s.client.Get(ctx, s.redisKey(category, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var entry entity.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry %s/%s: %w", category, key, err)
	}
	return &entry, nil
}

func (s *redisCacheStore) ReplaceUpsert(ctx context.Context, entry *entity.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.redisKey(entry.Category, entry.Key), raw, 0).Err()
}
