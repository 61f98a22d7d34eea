package gcs_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/storage/compliance"
	"github.com/rezkam/upkeep/internal/storage/gcs"
)

// TestGCSStoreCompliance runs the shared repository suite against a real
// bucket. Set UPKEEP_TEST_GCS_BUCKET (and credentials) to enable it.
func TestGCSStoreCompliance(t *testing.T) {
	bucket := os.Getenv("UPKEEP_TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("UPKEEP_TEST_GCS_BUCKET not set")
	}

	ctx := context.Background()
	compliance.RunRepositoryComplianceTest(t, func() (tracker.Repository, func()) {
		store, err := gcs.NewStore(ctx, bucket)
		require.NoError(t, err)
		return store, func() {
			require.NoError(t, store.Close())
		}
	})
}
