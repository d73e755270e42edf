// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	DatabasePath      string
	ExportDir         string
	TargetRate        float64
	Seed              uint64
	AnimationTick     time.Duration
	AnimationDuration time.Duration
	AnimationMaxDelay time.Duration
	DesktopNotify     bool
	LogLevel          string
	LogFile           string
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:      getEnvString(EnvDatabasePath, inConfigHome("handwash.db")),
		ExportDir:         getEnvString(EnvExportDir, inConfigHome("reports")),
		TargetRate:        getEnvFloat(EnvTargetRate, DefaultTargetRate),
		Seed:              getEnvUint(EnvSeed, 0),
		AnimationTick:     getEnvDuration(EnvAnimationTick, DefaultAnimationTick),
		AnimationDuration: getEnvDuration(EnvAnimationDuration, DefaultAnimationDuration),
		AnimationMaxDelay: getEnvDuration(EnvAnimationMaxDelay, DefaultAnimationMaxDelay),
		DesktopNotify:     getEnvBool(EnvDesktopNotify, false),
		LogLevel:          getEnvString(EnvLogLevel, "info"),
		LogFile:           getEnvString(EnvLogFile, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{filepath.Dir(cfg.DatabasePath), cfg.ExportDir} {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.TargetRate <= 0 || c.TargetRate > 1 {
		return fmt.Errorf("%w: %s must be within (0, 1], got %v", ErrInvalidConfig, EnvTargetRate, c.TargetRate)
	}
	if c.AnimationTick <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, EnvAnimationTick)
	}
	if c.AnimationDuration < c.AnimationTick {
		return fmt.Errorf("%w: %s (%s) shorter than %s (%s)", ErrInvalidConfig,
			EnvAnimationDuration, c.AnimationDuration, EnvAnimationTick, c.AnimationTick)
	}
	if c.AnimationMaxDelay < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, EnvAnimationMaxDelay)
	}
	return nil
}

// getEnvPaths lists .env candidates in priority order: the working directory,
// the per-user config directory, then two parents for running from a checkout.
func getEnvPaths() []string {
	var paths []string
	cwd, cwdErr := os.Getwd()
	if cwdErr == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, ok := configHome(); ok {
		paths = append(paths, filepath.Join(home, ".env"))
	}
	if cwdErr == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"), filepath.Join(filepath.Dir(parent), ".env"))
	}
	return paths
}

// configHome is ~/.config/<app>.
func configHome() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appDirName), true
}

// inConfigHome places name under configHome, or in the working directory when
// there is no home directory.
func inConfigHome(name string) string {
	if dir, ok := configHome(); ok {
		return filepath.Join(dir, name)
	}
	return name
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "20ms", "1s", "1m".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as milliseconds if no unit specified
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
// A trailing "%" divides by 100, so "76.684%" equals 0.76684.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	pct := strings.HasSuffix(value, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil {
		return defaultValue
	}
	if pct {
		f /= 100
	}
	return f
}

// getEnvUint retrieves an unsigned integer environment variable or returns the default.
func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
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
