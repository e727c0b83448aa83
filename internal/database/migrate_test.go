package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesJournalSchema(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))

	ctx := context.Background()
	var name string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name='transition_journal';`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "transition_journal", name)

	// the handle stays usable after migrating
	_, err = db.ExecContext(ctx, `SELECT COUNT(*) FROM transition_journal;`)
	require.NoError(t, err)

	// re-running against an up-to-date schema is a no-op
	require.NoError(t, Migrate(db))
}
