package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "trades", cfg.Journal.StorageKey)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, float64(10), cfg.Client.RateLimit)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	body := `
server:
  port: 9090
storage:
  driver: sqlite
  dsn: /tmp/journal-test.db
logger:
  level: debug
  format: json
journal:
  storage_key: my-trades
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/journal-test.db", cfg.Storage.DSN)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "my-trades", cfg.Journal.StorageKey)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  Server{Port: 8080},
			Storage: Storage{Driver: DriverFile, Dir: "./data"},
			Client:  Client{RateLimit: 1, RateLimitBurst: 1},
			Journal: Journal{StorageKey: "trades"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, errMsg: "storage.driver"},
		{name: "file without dir", mutate: func(c *Config) { c.Storage.Dir = "" }, errMsg: "storage.dir"},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.Storage.Driver = DriverSQLite }, errMsg: "storage.dsn"},
		{name: "negative quota", mutate: func(c *Config) { c.Storage.Driver = DriverMemory; c.Storage.MaxBytes = -1 }, errMsg: "max_bytes"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, errMsg: "server.port"},
		{name: "empty key", mutate: func(c *Config) { c.Journal.StorageKey = "" }, errMsg: "storage_key"},
		{name: "zero rate", mutate: func(c *Config) { c.Client.RateLimit = 0 }, errMsg: "rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
