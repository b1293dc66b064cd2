// Package config loads runtime configuration from environment variables
// and an optional config file next to the binary.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr     string
	Database Database
	JWT      JWT
}

// Database selects the driver and connection string.
type Database struct {
	Driver      string // "postgres" or "sqlite"
	DSN         string
	AutoMigrate bool
}

// JWT configures the signed session cookie.
type JWT struct {
	Secret string
	TTL    time.Duration
}

// Load reads config.yaml (if present in the working directory) and the
// environment. Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("addr", ":8081")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.automigrate", true)
	v.SetDefault("jwt.secret", "dev-insecure-secret-change")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	_ = v.BindEnv("addr", "ADDR")
	_ = v.BindEnv("db.driver", "DB_DRIVER")
	_ = v.BindEnv("db.dsn", "DB_DSN")
	_ = v.BindEnv("db.automigrate", "DB_AUTO_MIGRATE")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.ttl", "JWT_TTL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		Addr: v.GetString("addr"),
		Database: Database{
			Driver:      v.GetString("db.driver"),
			DSN:         v.GetString("db.dsn"),
			AutoMigrate: v.GetBool("db.automigrate"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
	}, nil
}
