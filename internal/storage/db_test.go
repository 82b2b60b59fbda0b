package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeexp/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "lifeexp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveRunAndReadBack(t *testing.T) {
	db := openTestDB(t)

	records := internal.CleanedTable{
		{Unit: "YR", Sex: "F", Age: "Y_LT1", Region: "PT", Year: 2020, Value: 83.1},
		{Unit: "YR", Sex: "M", Age: "Y_LT1", Region: "PT", Year: 2019, Value: 78.0},
	}
	run := internal.RunRow{ID: "run-1", Region: "PT", Format: "tsv", Source: "raw.tsv", Output: "pt.db", OutputFormat: "sqlite"}
	require.NoError(t, db.SaveRun(run, records, map[string]any{"rows": 2}))

	got, err := db.RecordsForRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, records, got)

	stored, err := db.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.Rows)
	assert.Equal(t, "PT", stored.Region)
	assert.NotEmpty(t, stored.CreatedAt)
}

func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)
	run, err := db.GetRun("nope")
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestSaveRunRequiresID(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, db.SaveRun(internal.RunRow{}, nil, nil))
}

func TestSaveRunDuplicateIDRollsBack(t *testing.T) {
	db := openTestDB(t)
	run := internal.RunRow{ID: "dup", Region: "FR", Format: "zip", Source: "a", Output: "b", OutputFormat: "sqlite"}
	require.NoError(t, db.SaveRun(run, internal.CleanedTable{{Unit: "YR", Sex: "T", Age: "Y1", Region: "FR", Year: 2018, Value: 82.5}}, nil))
	assert.Error(t, db.SaveRun(run, internal.CleanedTable{{Unit: "YR", Sex: "T", Age: "Y2", Region: "FR", Year: 2018, Value: 81.6}}, nil))

	got, err := db.RecordsForRun("dup")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListRuns(t *testing.T) {
	db := openTestDB(t)
	for _, id := range []string{"a", "b", "c"} {
		run := internal.RunRow{ID: id, Region: "PT", Format: "tsv", Source: "s", Output: "o", OutputFormat: "sqlite"}
		require.NoError(t, db.SaveRun(run, nil, nil))
	}

	runs, err := db.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}
