package config

import (
	"fmt"
	"strconv"
	"time"
)

const appDirName = "handwash"

// Environment variable names.
const (
	EnvDatabasePath      = "HANDWASH_DB_PATH"
	EnvExportDir         = "HANDWASH_EXPORT_DIR"
	EnvTargetRate        = "HANDWASH_TARGET_RATE"
	EnvSeed              = "HANDWASH_SEED"
	EnvAnimationTick     = "HANDWASH_ANIMATION_TICK"
	EnvAnimationDuration = "HANDWASH_ANIMATION_DURATION"
	EnvAnimationMaxDelay = "HANDWASH_ANIMATION_MAX_DELAY"
	EnvDesktopNotify     = "HANDWASH_DESKTOP_NOTIFY"
	EnvLogLevel          = "HANDWASH_LOG_LEVEL"
	EnvLogFile           = "HANDWASH_LOG_FILE"
)

// Default values
const (
	DefaultTargetRate        = 0.76684
	DefaultAnimationTick     = 20 * time.Millisecond
	DefaultAnimationDuration = time.Second
	DefaultAnimationMaxDelay = 600 * time.Millisecond
)

// Vars lists every environment variable with its current effective value,
// in the order the info view shows them.
func (c *Config) Vars() [][2]string {
	return [][2]string{
		{EnvDatabasePath, c.DatabasePath},
		{EnvExportDir, c.ExportDir},
		{EnvTargetRate, formatRate(c.TargetRate)},
		{EnvSeed, seedLabel(c.Seed)},
		{EnvAnimationTick, c.AnimationTick.String()},
		{EnvAnimationDuration, c.AnimationDuration.String()},
		{EnvAnimationMaxDelay, c.AnimationMaxDelay.String()},
		{EnvDesktopNotify, boolLabel(c.DesktopNotify)},
		{EnvLogLevel, c.LogLevel},
		{EnvLogFile, orNone(c.LogFile)},
	}
}

func formatRate(r float64) string {
	return fmt.Sprintf("%.5g (%.3f%%)", r, r*100)
}

func seedLabel(seed uint64) string {
	if seed == 0 {
		return "0 (time-seeded)"
	}
	return strconv.FormatUint(seed, 10)
}

func boolLabel(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
