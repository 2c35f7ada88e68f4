package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "item-sync", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "prefer-a", cfg.Sync.Strategy)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, "database", cfg.Sync.MappingBackend)
	assert.Equal(t, "tasks/", cfg.Sync.TasksPrefix)
	assert.True(t, cfg.Integrity.Enabled)
	assert.Equal(t, 8, cfg.Integrity.Workers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_STRATEGY", "most-recent")
	t.Setenv("SYNC_FAIL_FAST", "true")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "most-recent", cfg.Sync.Strategy)
	assert.True(t, cfg.Sync.FailFast)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_WORKERS=9\nSERVER_PORT=9999\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SYNC_WORKERS")
		os.Unsetenv("SERVER_PORT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Sync.Workers)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadConfig_InvalidStrategy(t *testing.T) {
	t.Setenv("SYNC_STRATEGY", "coin-flip")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "coin-flip")
}
