package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/storage/compliance"
	"github.com/rezkam/upkeep/internal/storage/sqlite"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (tracker.Repository, func()) {
		store, err := sqlite.NewStore(context.Background(), filepath.Join(t.TempDir(), "tasks.db"))
		require.NoError(t, err)
		return store, func() {
			require.NoError(t, store.Close())
		}
	})
}
