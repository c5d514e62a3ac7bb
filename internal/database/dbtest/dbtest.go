// Package dbtest provides throwaway in-memory SQLite stores for tests.
package dbtest

import (
	"context"
	"testing"

	"emptycup/internal/config"
	"emptycup/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// URL returns a database URL for a fresh, uniquely named in-memory SQLite store.
func URL() string {
	return "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

// Open opens an empty migrated store that is closed when the test ends.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{URL: URL()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db.DB))
	return db
}
