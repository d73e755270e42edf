package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/logger"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// ErrExportNotFound is returned when no export has the requested id.
var ErrExportNotFound = errors.New("export not found")

const exportColumns = `id, generated_at, path, format, unit_label, kind, date_range,
	total_attempts, total_successes, success_rate, pages`

// InsertExport records a written report file.
func (db *DB) InsertExport(rec *models.ExportRecord) error {
	query := `
		INSERT INTO exports (` + exportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	generatedAt := rec.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
		rec.GeneratedAt = generatedAt
	}

	_, err := db.ExecContext(context.Background(), query,
		rec.ID,
		generatedAt.UTC().Format(timeLayout),
		rec.Path,
		rec.Format,
		rec.UnitLabel,
		rec.Kind,
		rec.DateRangeLabel,
		rec.TotalAttempts,
		rec.TotalSuccesses,
		rec.SuccessRate,
		rec.Pages,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	logger.Debug("export recorded", "id", rec.ID, "path", rec.Path)
	return nil
}

// ListExports returns the most recent exports, newest first.
func (db *DB) ListExports(limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `
		SELECT ` + exportColumns + `
		FROM exports
		ORDER BY generated_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.ExportRecord
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetExport returns one export by id.
func (db *DB) GetExport(id string) (*models.ExportRecord, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = ?`

	rec, err := scanExport(db.QueryRowContext(context.Background(), query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrExportNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CountExports returns the number of logged exports.
func (db *DB) CountExports() (int, error) {
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM exports").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count exports: %w", err)
	}
	return n, nil
}

// DeleteExport removes an export entry.
func (db *DB) DeleteExport(id string) error {
	_, err := db.ExecContext(context.Background(), "DELETE FROM exports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	return nil
}

// DeleteExportsByPath removes every entry pointing at path, returning how many were removed.
func (db *DB) DeleteExportsByPath(path string) (int64, error) {
	res, err := db.ExecContext(context.Background(), "DELETE FROM exports WHERE path = ?", path)
	if err != nil {
		return 0, fmt.Errorf("failed to delete exports for %s: %w", path, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (models.ExportRecord, error) {
	var rec models.ExportRecord
	var generatedAt string
	err := row.Scan(
		&rec.ID,
		&generatedAt,
		&rec.Path,
		&rec.Format,
		&rec.UnitLabel,
		&rec.Kind,
		&rec.DateRangeLabel,
		&rec.TotalAttempts,
		&rec.TotalSuccesses,
		&rec.SuccessRate,
		&rec.Pages,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("failed to scan export: %w", err)
	}

	rec.GeneratedAt = parseTime(generatedAt)
	return rec, nil
}

// parseTime reads the stored layout and tolerates the RFC3339 form the
// driver returns for DATETIME columns.
func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
