package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	for _, rel := range []string{"exports.db", filepath.Join("a", "b", "exports.db")} {
		t.Run(rel, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), rel)

			db, err := New(path)
			if err != nil {
				t.Fatalf("New(%s): %v", rel, err)
			}
			defer db.Close()

			if db.Path() != path {
				t.Errorf("Path() = %s, want %s", db.Path(), path)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("database file not created: %v", err)
			}
		})
	}
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	var name string
	err := db.QueryRowContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type='table' AND name='exports'").Scan(&name)
	if err != nil {
		t.Fatalf("exports table missing: %v", err)
	}

	var hasPages int
	err = db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM pragma_table_info('exports') WHERE name='pages'").Scan(&hasPages)
	if err != nil || hasPages != 1 {
		t.Errorf("pages column missing after migrations (err=%v)", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	_ = db.Close()

	// Reopening must not re-run applied migrations.
	db, err = New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("SchemaVersion = %d, want %d", v, len(migrations))
	}
}

func TestPragmasApplied(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	mode, err := db.JournalMode()
	if err != nil {
		t.Fatalf("JournalMode failed: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal mode = %q, want wal", mode)
	}

	var timeout int
	if err := db.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestDSN(t *testing.T) {
	got := dsn("/tmp/log.db")
	if !strings.HasPrefix(got, "file:/tmp/log.db?") {
		t.Errorf("dsn = %q", got)
	}
	if strings.Count(got, "_pragma=") != len(pragmas) {
		t.Errorf("dsn should carry every pragma, got %q", got)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if err := db.PingContext(context.Background()); err == nil {
		t.Error("ping succeeded after Close")
	}
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "exports.db"))
	if err != nil {
		t.Fatalf("open export log: %v", err)
	}
	return db
}
