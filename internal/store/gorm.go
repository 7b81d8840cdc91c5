package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the key-value table.
type Entry struct {
	Key       string `gorm:"primaryKey;column:bucket;size:100"`
	Value     string `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name shared with the SQL migrations.
func (Entry) TableName() string { return "kv_entries" }

// GormStore keeps entries in a SQL table through gorm (SQLite or PostgreSQL).
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore wraps an open connection. The kv_entries table must exist.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.DB.WithContext(ctx).Where("bucket = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bucket"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&e).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	return s.DB.WithContext(ctx).Exec("SELECT 1").Error
}
