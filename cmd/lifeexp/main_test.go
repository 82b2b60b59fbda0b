package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeexp/internal/catalog"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	out := t.TempDir()
	t.Setenv("LIFEEXP_CONFIG", "")
	t.Setenv("LIFEEXP_DATA_DIR", filepath.Join("..", "..", "internal", "pipeline", "testdata"))
	t.Setenv("LIFEEXP_OUTPUT_DIR", out)
	t.Setenv("LIFEEXP_DB_PATH", filepath.Join(out, "lifeexp.db"))
	t.Setenv("LIFEEXP_DEFAULT_REGION", "PT")
	t.Setenv("LIFEEXP_DEFAULT_FORMAT", "tsv")
	t.Setenv("LIFEEXP_OUTPUT_FORMAT", "csv")
	t.Setenv("LOG_LEVEL", "error")
	return out
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCleanCommand(t *testing.T) {
	out := setupEnv(t)

	stdout, err := execute(t, "clean")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cleaned 4 rows for PT")
	assert.Contains(t, stdout, "2019-2021")

	_, err = os.Stat(filepath.Join(out, "pt_life_expectancy.csv"))
	assert.NoError(t, err)
}

func TestCleanCommandInvalidRegion(t *testing.T) {
	out := setupEnv(t)

	_, err := execute(t, "clean", "--region", "XX")
	var invalid *catalog.InvalidRegionError
	require.True(t, errors.As(err, &invalid))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegionsCommand(t *testing.T) {
	setupEnv(t)

	stdout, err := execute(t, "regions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "EU27_2020")
	assert.Contains(t, stdout, "PT")

	stdout, err = execute(t, "regions", "--countries")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PT")
	assert.NotContains(t, stdout, "EU27_2020")
}

func TestRegionsFromFeed(t *testing.T) {
	setupEnv(t)

	stdout, err := execute(t, "regions", "--format", "tsv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DE_TOT")
	assert.Contains(t, stdout, "FR")
	assert.NotContains(t, stdout, "UK")
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "clean", "--output-format", "sqlite")
	require.NoError(t, err)
	_, err = execute(t, "clean", "--region", "FR", "--output-format", "sqlite")
	require.NoError(t, err)

	stdout, err := execute(t, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FR")
	assert.NotContains(t, stdout, "| PT")
}
