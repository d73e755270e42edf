package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at an empty temp dir so no
// developer .env file leaks into Load.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Setenv("HOME", tmpDir)
	for _, key := range []string{
		EnvDatabasePath, EnvExportDir, EnvTargetRate, EnvSeed, EnvAnimationTick,
		EnvAnimationDuration, EnvAnimationMaxDelay, EnvDesktopNotify, EnvLogLevel, EnvLogFile,
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidMillis", "150", time.Second, 150 * time.Millisecond},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_ENV_FLOAT"

	tests := []struct {
		name   string
		envVal string
		want   float64
	}{
		{"Fraction", "0.8", 0.8},
		{"Percent", "76.684%", 0.76684},
		{"Invalid", "abc", 0.5},
		{"Empty", "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			got := getEnvFloat(key, 0.5)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("getEnvFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBoolAndUint(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "true")
	if !getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool() = false, want true")
	}
	t.Setenv("TEST_ENV_BOOL", "maybe")
	if getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool() should fall back to default on garbage")
	}

	t.Setenv("TEST_ENV_UINT", "42")
	if got := getEnvUint("TEST_ENV_UINT", 0); got != 42 {
		t.Errorf("getEnvUint() = %d, want 42", got)
	}
	t.Setenv("TEST_ENV_UINT", "-1")
	if got := getEnvUint("TEST_ENV_UINT", 7); got != 7 {
		t.Errorf("getEnvUint() = %d, want 7", got)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestInConfigHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	for _, name := range []string{"handwash.db", "reports"} {
		want := filepath.Join(home, ".config", "handwash", name)
		if got := inConfigHome(name); got != want {
			t.Errorf("inConfigHome(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestGetEnvPaths_WorkingDirFirst(t *testing.T) {
	paths := getEnvPaths()
	cwd, err := os.Getwd()
	if err != nil {
		t.Skip("no working directory")
	}
	if len(paths) == 0 || paths[0] != filepath.Join(cwd, ".env") {
		t.Errorf("getEnvPaths()[0] should be ./.env, got %v", paths)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TargetRate != DefaultTargetRate {
		t.Errorf("TargetRate = %v, want %v", cfg.TargetRate, DefaultTargetRate)
	}
	if cfg.AnimationTick != DefaultAnimationTick {
		t.Errorf("AnimationTick = %v, want %v", cfg.AnimationTick, DefaultAnimationTick)
	}
	if cfg.Seed != 0 || cfg.DesktopNotify {
		t.Errorf("unexpected seed/notify defaults: %d %v", cfg.Seed, cfg.DesktopNotify)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "handwash", "reports")); err != nil {
		t.Errorf("export dir not created: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv(EnvDatabasePath, filepath.Join(tmpDir, "db", "log.sqlite"))
	t.Setenv(EnvExportDir, filepath.Join(tmpDir, "out"))
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvAnimationTick, "50ms")
	t.Setenv(EnvDesktopNotify, "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Seed)
	}
	if cfg.AnimationTick != 50*time.Millisecond {
		t.Errorf("AnimationTick = %v, want 50ms", cfg.AnimationTick)
	}
	if !cfg.DesktopNotify {
		t.Error("DesktopNotify should be on")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "db")); err != nil {
		t.Errorf("database dir not created: %v", err)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	envPath := filepath.Join(tmpDir, ".env")
	content := "HANDWASH_TARGET_RATE=0.9\nHANDWASH_LOG_LEVEL=debug"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv does not override variables that are already set
	os.Unsetenv(EnvTargetRate)
	os.Unsetenv(EnvLogLevel)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TargetRate != 0.9 {
		t.Errorf("TargetRate = %v, want 0.9", cfg.TargetRate)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		TargetRate:        DefaultTargetRate,
		AnimationTick:     DefaultAnimationTick,
		AnimationDuration: DefaultAnimationDuration,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(*Config) {}, false},
		{"ZeroRate", func(c *Config) { c.TargetRate = 0 }, true},
		{"RateAboveOne", func(c *Config) { c.TargetRate = 1.2 }, true},
		{"ZeroTick", func(c *Config) { c.AnimationTick = 0 }, true},
		{"TickLongerThanDuration", func(c *Config) { c.AnimationTick = 2 * time.Second }, true},
		{"NegativeDelay", func(c *Config) { c.AnimationMaxDelay = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestVars(t *testing.T) {
	cfg := Config{TargetRate: DefaultTargetRate, AnimationTick: DefaultAnimationTick}
	vars := cfg.Vars()
	if len(vars) != 10 {
		t.Fatalf("Vars() returned %d entries, want 10", len(vars))
	}
	if vars[2][1] != "0.76684 (76.684%)" {
		t.Errorf("target rate label = %q", vars[2][1])
	}
	if vars[3][1] != "0 (time-seeded)" {
		t.Errorf("seed label = %q", vars[3][1])
	}
	if vars[9][1] != "(none)" {
		t.Errorf("log file label = %q", vars[9][1])
	}
}
