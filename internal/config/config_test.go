package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("BARK_DATA_DIR", dataDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "bookmarks.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "bark.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 100, cfg.GitHub.PerPage)
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.Empty(t, cfg.GitHub.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BARK_DATA_DIR", t.TempDir())
	t.Setenv("BARK_DB_PATH", "/tmp/other.db")
	t.Setenv("BARK_LOG_LEVEL", "debug")
	t.Setenv("BARK_GITHUB_PER_PAGE", "50")
	t.Setenv("BARK_GITHUB_TIMEOUT", "5s")
	t.Setenv("GITHUB_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.GitHub.PerPage)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, "secret", cfg.GitHub.Token)
}

func TestLoadConfigFileInDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("BARK_DATA_DIR", dataDir)

	yaml := "log:\n  level: warn\n  pretty: true\ngithub:\n  base_url: http://localhost:9999\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "http://localhost:9999", cfg.GitHub.BaseURL)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	t.Setenv("BARK_DATA_DIR", t.TempDir())

	path := filepath.Join(t.TempDir(), "bark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /var/lib/bark/b.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/bark/b.db", cfg.DBPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
