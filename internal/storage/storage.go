// Package storage provides the key/value blob stores the journal persists to.
package storage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
)

// ErrQuotaExceeded is returned by a quota-limited store when a write would
// exceed its capacity.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a key/value blob store. Load reports ok=false for a key that was
// never written.
type Store interface {
	Save(key string, data []byte) error
	Load(key string) (data []byte, ok bool, err error)
}

// New creates the store selected by cfg.Driver.
func New(cfg config.Storage, logger *zap.Logger) (Store, error) {
	logger = logger.Named("storage").With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("Using in-memory storage; trades are lost on exit", zap.Int("max_bytes", cfg.MaxBytes))
		return NewMemory(cfg.MaxBytes), nil
	case config.DriverFile:
		dir, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		logger.Info("Using file storage", zap.String("dir", dir))
		return NewFile(dir)
	case config.DriverSQLite:
		db, err := database.NewDatabase(cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQLite storage", zap.String("dsn", cfg.DSN))
		return NewSQLite(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
