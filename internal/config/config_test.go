package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIFEEXP_CONFIG", "")
	t.Setenv("LIFEEXP_DEFAULT_REGION", "")
	os.Unsetenv("LIFEEXP_DEFAULT_REGION")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "PT", cfg.DefaultRegion)
	assert.Equal(t, "tsv", cfg.DefaultFormat)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, "data", filepath.Base(cfg.DataDir))
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifeexp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_region: FR\ndata_dir: /srv/feed\nhistory_limit: 5\n"), 0o644))

	t.Setenv("LIFEEXP_CONFIG", path)
	t.Setenv("LIFEEXP_DATA_DIR", "/override")
	t.Setenv("LIFEEXP_DEFAULT_REGION", "")
	os.Unsetenv("LIFEEXP_DEFAULT_REGION")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "FR", cfg.DefaultRegion)
	assert.Equal(t, "/override", cfg.DataDir)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadBadFile(t *testing.T) {
	t.Setenv("LIFEEXP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestRawPath(t *testing.T) {
	cfg := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "eu_life_expectancy_raw.zip"), cfg.RawPath("zip"))
	assert.Equal(t, filepath.Join("/data", "eu_life_expectancy_raw.tsv"), cfg.RawPath("TSV"))
}
