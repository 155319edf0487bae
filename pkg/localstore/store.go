// Package localstore is the server-side home for the small bits of state the
// app keeps outside the main schema: preferences, drafts, clone and backup
// history, export templates. Values are JSON blobs in a key-value table and
// list-valued keys are evicted down to a fixed number of recent entries.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	KeyPreferences     = "preferences"
	KeyDrafts          = "drafts"
	KeyCloneHistory    = "clone.history"
	KeyBackupHistory   = "backup.history"
	KeyExportTemplates = "export.templates"
)

const (
	DraftLimit          = 5
	CloneHistoryLimit   = 10
	BackupHistoryLimit  = 10
	ExportTemplateLimit = 20
)

type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     datatypes.JSON
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "local_kv"
}

type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var entry Entry

	result := s.db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, result.Error
	}

	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, err
	}

	return true, nil
}

func (s *DBStore) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := Entry{Key: key, Value: raw, UpdatedAt: time.Now()}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&entry)

	return result.Error
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

// PushBounded prepends item to the list stored under key and drops entries
// beyond limit, newest first.
func PushBounded[T any](ctx context.Context, store Store, key string, item T, limit int) ([]T, error) {
	var items []T

	if _, err := store.Get(ctx, key, &items); err != nil {
		return nil, err
	}

	items = append([]T{item}, items...)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	if err := store.Put(ctx, key, items); err != nil {
		return nil, err
	}

	return items, nil
}
