package db

import (
	"context"
	"fmt"
)

// migrations run in order; migration i brings the schema to user_version i+1.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		generated_at DATETIME NOT NULL,
		path TEXT NOT NULL,
		format TEXT NOT NULL,
		unit_label TEXT NOT NULL,
		kind TEXT NOT NULL,
		date_range TEXT NOT NULL,
		total_attempts INTEGER DEFAULT 0,
		total_successes INTEGER DEFAULT 0,
		success_rate REAL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_exports_generated ON exports(generated_at);`,
	`ALTER TABLE exports ADD COLUMN pages INTEGER DEFAULT 1;
	CREATE INDEX IF NOT EXISTS idx_exports_path ON exports(path);`,
}

// SchemaVersion returns the applied migration count.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// migrate applies every migration newer than the stored user_version.
func (db *DB) migrate() error {
	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(context.Background(), migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
