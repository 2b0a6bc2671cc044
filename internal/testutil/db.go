package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	// sqlite driver for fixture databases.
	_ "modernc.org/sqlite"
)

// CreateDB creates a SQLite database file at path and runs each statement.
// Parent directories are created as needed.
func CreateDB(t testing.TB, path string, statements ...string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if len(statements) == 0 {
		// An untouched database has no file; force the header to be written.
		statements = []string{"PRAGMA user_version = 1"}
	}
	for _, stmt := range statements {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}
