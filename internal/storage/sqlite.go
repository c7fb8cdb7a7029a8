package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trade-journal-go/internal/models"
)

// SQLite stores blobs as rows of the blobs table.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite wraps an already migrated database.
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Save(key string, data []byte) error {
	blob := models.Blob{Key: key, Value: data, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Load(key string) ([]byte, bool, error) {
	var blob models.Blob
	err := s.db.Where("key = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return blob.Value, true, nil
}
