package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Name    string
	Port    string `validate:"required,numeric"`
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Driver     string `validate:"oneof=postgres sqlite"`
	Host       string `validate:"required_if=Driver postgres"`
	Port       string `validate:"omitempty,numeric"`
	Name       string `validate:"required_if=Driver postgres"`
	User       string `validate:"required_if=Driver postgres"`
	Password   string
	MaxConns   int32  `validate:"min=1"`
	SQLitePath string `validate:"required_if=Driver sqlite"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int `validate:"min=0"`
	RateLimitWindow    time.Duration
	ShutdownTimeout    time.Duration
}

// LoadConfig reads the .env file at path (missing file is fine) and lets
// environment variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-catalog")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SQLITE_PATH", "movies.db")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASS"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
