package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeFromSchemaWithoutShapeCount simulates a database created
// before drawings carried a shape_count column. Existing rows must survive
// and get their count backfilled from the stored document.
func TestMigrate_UpgradeFromSchemaWithoutShapeCount(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE drawings (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		units       TEXT NOT NULL DEFAULT 'mm',
		doc         TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO drawings (id, name, units, doc, created_at, updated_at)
		VALUES ('legacy', 'Old plan', 'cm', '{"shapes":[{"id":"w1"},{"id":"w2"},{"id":"w3"}]}', ?, ?)`, ts, ts)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var name, units string
	var count int
	err = db.QueryRow(`SELECT name, units, shape_count FROM drawings WHERE id = 'legacy'`).Scan(&name, &units, &count)
	require.NoError(t, err)
	assert.Equal(t, "Old plan", name)
	assert.Equal(t, "cm", units)
	assert.Equal(t, 3, count)

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM script_runs`).Scan(&runs))
	assert.Zero(t, runs)
}
