package entity

import (
	"time"

	"gorm.io/datatypes"
)

// CacheEntry is the last successful payload fetched for a (category, key) pair.
type CacheEntry struct {
	Category  string         `gorm:"primaryKey;size:64" json:"category"`
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	FetchedAt time.Time      `gorm:"not null" json:"timestamp"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
