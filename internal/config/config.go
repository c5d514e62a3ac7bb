package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes caps bulk JSON uploads at 16 MiB.
const DefaultMaxUploadBytes = 16 * 1024 * 1024

// Config holds the runtime settings of the service.
type Config struct {
	Port           string
	Env            string
	MaxUploadBytes int
	Database       DatabaseConfig
	RabbitMQURL    string
}

// DatabaseConfig selects the storage backend. URL is either
// sqlite:///path/to/file.db or a postgres:// connection string.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables on top of defaults.
// A nil viper instance falls back to the global one.
func Load(v *viper.Viper) Config {
	if v == nil {
		v = viper.GetViper()
	}
	v.SetDefault("PORT", "5001")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DATABASE_URL", "sqlite:///emptycup.db")
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	cfg := Config{
		Port:           strings.TrimPrefix(v.GetString("PORT"), ":"),
		Env:            strings.ToLower(v.GetString("APP_ENV")),
		MaxUploadBytes: v.GetInt("MAX_UPLOAD_BYTES"),
		Database:       DatabaseConfig{URL: v.GetString("DATABASE_URL")},
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// IsDevelopment reports whether the service runs with development logging.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that the required settings are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database url cannot be empty")
	}
	return nil
}
