package fs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/storage/compliance"
	"github.com/rezkam/upkeep/internal/storage/fs"
)

func TestFSStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (tracker.Repository, func()) {
		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)
		return store, func() {}
	})
}
