package repository

import (
	"context"
	"errors"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postgresCacheStore struct {
	db *gorm.DB
}

// NewPostgresCacheStore stores entries in the cache_entries table.
func NewPostgresCacheStore(db *gorm.DB) CacheStore {
	return &postgresCacheStore{db: db}
}

func (s *postgresCacheStore) FindOne(ctx context.Context, category, key string) (*entity.CacheEntry, error) {
	var entry entity.CacheEntry
	err := s.db.WithContext(ctx).
		Where("category = ? AND key = ?", category, key).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return &entry, nil
}

func (s *postgresCacheStore) ReplaceUpsert(ctx context.Context, entry *entity.CacheEntry) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "fetched_at", "updated_at"}),
	}).Create(entry).Error
}
