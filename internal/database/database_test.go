package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func TestNewDatabase_MigratesAndKeepsRows(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "journal.db")

	db, err := NewDatabase(dsn)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&models.Blob{}))
	require.NoError(t, db.Create(&models.Blob{Key: "trades", Value: []byte("[]")}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// Reopening must not drop existing data.
	db, err = NewDatabase(dsn)
	require.NoError(t, err)
	var blob models.Blob
	require.NoError(t, db.Where("key = ?", "trades").First(&blob).Error)
	assert.Equal(t, "[]", string(blob.Value))
}
