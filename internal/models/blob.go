package models

import "time"

// Blob is a single key/value entry in the SQLite-backed blob store.
// The journal keeps its whole trade list under one key.
type Blob struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}
