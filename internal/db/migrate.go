package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillShapeCounts(db); err != nil {
		return fmt.Errorf("backfilling shape counts: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drawings (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		units       TEXT NOT NULL DEFAULT 'mm'
		            CHECK(units IN ('mm','cm','m')),
		doc         TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_drawings_updated ON drawings(updated_at)`,

	`CREATE TABLE IF NOT EXISTS script_runs (
		id           TEXT PRIMARY KEY,
		drawing_id   TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
		script       TEXT NOT NULL,
		success      INTEGER NOT NULL,
		error_type   TEXT NOT NULL DEFAULT ''
		             CHECK(error_type IN ('','syntax','runtime','validation')),
		error_line   INTEGER NOT NULL DEFAULT 0,
		message      TEXT NOT NULL DEFAULT '',
		created_ids  INTEGER NOT NULL DEFAULT 0,
		duration_ms  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_script_runs_drawing ON script_runs(drawing_id, created_at)`,

	// Denormalised shape count for listings
	`ALTER TABLE drawings ADD COLUMN shape_count INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillShapeCounts fills shape_count for rows written before the
// column existed. Idempotent: only rows whose document disagrees are touched.
func migrateBackfillShapeCounts(db *sql.DB) error {
	ctx := context.Background()
	query := `UPDATE drawings
		SET shape_count = COALESCE(json_array_length(doc, '$.shapes'), 0)
		WHERE shape_count != COALESCE(json_array_length(doc, '$.shapes'), 0)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating drawings.shape_count: %w", err)
	}
	return nil
}
