package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  Server  `mapstructure:"server"`
	Storage Storage `mapstructure:"storage"`
	Logger  Logger  `mapstructure:"logger"`
	Client  Client  `mapstructure:"client"`
	Journal Journal `mapstructure:"journal"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Storage selects and configures the blob store backing the journal.
type Storage struct {
	Driver   string `mapstructure:"driver"` // memory, file or sqlite
	Dir      string `mapstructure:"dir"`
	DSN      string `mapstructure:"dsn"`
	MaxBytes int    `mapstructure:"max_bytes"` // memory driver quota, 0 = unlimited
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Client holds the configuration for the journal API client used by the CLI.
type Client struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// Journal holds settings of the trade journal itself.
type Journal struct {
	StorageKey string `mapstructure:"storage_key"`
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.dsn", "journal.db")
	v.SetDefault("storage.max_bytes", 0)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.rate_limit", 10) // requests per second
	v.SetDefault("client.rate_limit_burst", 5)
	v.SetDefault("client.timeout_seconds", 10)
	v.SetDefault("journal.storage_key", "trades")
}

// LoadConfig reads configuration from path/config.yml, a .env file in the
// working directory and environment variables. A missing config file is not
// an error; defaults apply.
func LoadConfig(path string) (config Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	err = config.Validate()
	return
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
		if c.Storage.MaxBytes < 0 {
			return fmt.Errorf("storage.max_bytes must not be negative")
		}
	case DriverFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, file, sqlite (got %q)", c.Storage.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Journal.StorageKey == "" {
		return fmt.Errorf("journal.storage_key is required")
	}
	if c.Client.RateLimit <= 0 {
		return fmt.Errorf("client.rate_limit must be positive")
	}
	if c.Client.RateLimitBurst <= 0 {
		return fmt.Errorf("client.rate_limit_burst must be positive")
	}
	return nil
}

// StoragePath resolves the data directory used by the file driver.
func (s Storage) StoragePath() (string, error) {
	return filepath.Abs(s.Dir)
}
