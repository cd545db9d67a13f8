package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDatabaseIntegration tests the complete database lifecycle on SQLite
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "integration.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	applied, err := db.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_kv_store.sql"}, applied)

	// second run is a no-op
	applied, err = db.RunMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "kv_store").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)

	// upsert replaces in place
	_, err = db.ExecContext(ctx, db.Dialect.UpsertKV(), "progress_Alex", `{"totalAttempts":1}`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, db.Dialect.UpsertKV(), "progress_Alex", `{"totalAttempts":2}`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&count))
	assert.Equal(t, 1, count)

	var value string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT store_value FROM kv_store WHERE store_key = ?", "progress_Alex").Scan(&value))
	assert.Equal(t, `{"totalAttempts":2}`, value)
}
