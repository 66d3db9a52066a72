// Package cli provides common CLI initialization utilities shared by the
// billtrack subcommands.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"billtrack/internal/config"
	applog "billtrack/internal/log"
	"billtrack/internal/services"
	"billtrack/internal/storage"
	"billtrack/internal/storage/memory"
)

// SetupLogger initializes structured logging at the configured level and
// sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	// ParseLogLevel falls back to info on bad input
	lvl, _ := config.ParseLogLevel(level)
	logger := applog.New(lvl, applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the configured store backend. Returns the store and a
// cleanup function, or exits the process on failure.
func InitStore(logger *applog.Logger, cfg *config.Config) (services.Store, func() error) {
	switch cfg.DataBackend {
	case "memory":
		store := memory.New(nil)
		logger.Info("Initialized memory backend", applog.FieldBackend, cfg.DataBackend)
		return store, store.Close
	default:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store",
				applog.FieldError, err,
				applog.FieldPath, cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend",
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldPath, cfg.SQLiteDBPath)
		return store, store.Close
	}
}
