package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/storage/compliance"
	"github.com/rezkam/upkeep/internal/storage/postgres"
)

// TestPostgresStoreCompliance runs the shared repository suite against a
// real PostgreSQL instance. Set UPKEEP_TEST_POSTGRES_URL to enable it.
func TestPostgresStoreCompliance(t *testing.T) {
	dsn := os.Getenv("UPKEEP_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("UPKEEP_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	compliance.RunRepositoryComplianceTest(t, func() (tracker.Repository, func()) {
		store, err := postgres.NewPostgresStore(ctx, dsn)
		require.NoError(t, err)

		_, err = store.Pool().Exec(ctx, "TRUNCATE tasks")
		require.NoError(t, err)

		return store, func() {
			require.NoError(t, store.Close())
		}
	})
}
