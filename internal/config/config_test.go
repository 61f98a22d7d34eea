package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/upkeep/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "./upkeep.db", cfg.SQLitePath)
	assert.Equal(t, 30, cfg.DueSoonWindowDays)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UPKEEP_HTTP_PORT", "9000")
	t.Setenv("UPKEEP_STORAGE_TYPE", "fs")
	t.Setenv("UPKEEP_FS_DIR", "/var/lib/upkeep")
	t.Setenv("UPKEEP_DUE_SOON_WINDOW_DAYS", "14")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "fs", cfg.StorageType)
	assert.Equal(t, "/var/lib/upkeep", cfg.FSDir)
	assert.Equal(t, 14, cfg.DueSoonWindowDays)
}

func TestLoadValidatesStorageDependencies(t *testing.T) {
	t.Run("gcs requires bucket", func(t *testing.T) {
		t.Setenv("UPKEEP_STORAGE_TYPE", "gcs")
		t.Setenv("UPKEEP_GCS_BUCKET", "")

		_, err := config.Load()
		assert.ErrorContains(t, err, "UPKEEP_GCS_BUCKET")
	})

	t.Run("postgres requires url", func(t *testing.T) {
		t.Setenv("UPKEEP_STORAGE_TYPE", "postgres")

		_, err := config.Load()
		assert.ErrorContains(t, err, "UPKEEP_POSTGRES_URL")
	})

	t.Run("unknown storage type", func(t *testing.T) {
		t.Setenv("UPKEEP_STORAGE_TYPE", "redis")

		_, err := config.Load()
		assert.ErrorContains(t, err, "unknown UPKEEP_STORAGE_TYPE")
	})

	t.Run("memory needs nothing", func(t *testing.T) {
		t.Setenv("UPKEEP_STORAGE_TYPE", "memory")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.StorageType)
	})
}

func TestLoadRejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("UPKEEP_DUE_SOON_WINDOW_DAYS", "0")

	_, err := config.Load()
	assert.ErrorContains(t, err, "UPKEEP_DUE_SOON_WINDOW_DAYS")
}
