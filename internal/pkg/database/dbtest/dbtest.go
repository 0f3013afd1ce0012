// Package dbtest opens throwaway sqlite stores for integration tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stockledger/internal/pkg/database"
)

// NewStore returns a migrated store in a per-test temp directory.
func NewStore(t *testing.T) *database.Store {
	t.Helper()
	ctx := context.Background()

	store, err := database.Open(ctx, database.Options{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, database.Migrate(ctx, store))
	return store
}
