// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DayDataPath    string
	HourDataPath   string
	ExportDir      string
	ExportFormat   string
	WatchSources   bool
	WatchDebounce  time.Duration
	NotifyOnChange bool
	LogLevel       string
	LogPath        string
}

// Default values
const (
	defaultDayDataPath   = "dashboard/day_data.csv"
	defaultHourDataPath  = "dashboard/hour_data.csv"
	defaultExportFormat  = "json"
	defaultWatchDebounce = 250 * time.Millisecond
	defaultLogLevel      = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// First .env found wins
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DayDataPath:    getEnvString("DAY_DATA_PATH", defaultDayDataPath),
		HourDataPath:   getEnvString("HOUR_DATA_PATH", defaultHourDataPath),
		ExportDir:      getEnvString("EXPORT_DIR", getDefaultExportDir()),
		ExportFormat:   strings.ToLower(getEnvString("EXPORT_FORMAT", defaultExportFormat)),
		WatchSources:   getEnvBool("WATCH_SOURCES", true),
		WatchDebounce:  getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
		NotifyOnChange: getEnvBool("NOTIFY_ON_CHANGE", false),
		LogLevel:       strings.ToLower(getEnvString("LOG_LEVEL", defaultLogLevel)),
		LogPath:        getEnvString("LOG_PATH", getDefaultLogPath()),
	}

	if cfg.DayDataPath == "" || cfg.HourDataPath == "" {
		return nil, fmt.Errorf("DAY_DATA_PATH and HOUR_DATA_PATH must not be empty")
	}
	if cfg.WatchDebounce < 0 {
		return nil, fmt.Errorf("WATCH_DEBOUNCE must not be negative, got %s", cfg.WatchDebounce)
	}

	// Log file directory must exist before the logger opens it
	if cfg.LogPath != "" {
		if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory location
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bikedash", ".env"))
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultExportDir returns the default directory for report exports.
func getDefaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "exports"
	}
	return filepath.Join(home, ".config", "bikedash", "exports")
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bikedash.log"
	}
	return filepath.Join(home, ".config", "bikedash", "bikedash.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Bare integers are milliseconds
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts anything strconv.ParseBool does plus "yes"/"no" and "on"/"off".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
