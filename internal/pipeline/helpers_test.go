package pipeline

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeexp/internal"
)

const flatJSON = `[
  {"unit": "YR", "sex": "F", "age": "Y1", "country": "PT", "year": 2019, "life_expectancy": 80.5},
  {"unit": "YR", "sex": "M", "age": "Y1", "country": "FR", "year": 2019, "life_expectancy": 79.1},
  {"unit": "YR", "sex": "M", "age": "Y1", "country": "PT", "year": 2018, "life_expectancy": 77.9, "flag": "e"}
]`

// mkZip writes an archive holding the given entries (name, content) in order.
func mkZip(t *testing.T, entries ...[2]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eu_life_expectancy_raw.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// mkRaw builds a RawTable from a header and string rows.
func mkRaw(t *testing.T, header []string, rows ...[]string) *internal.RawTable {
	t.Helper()
	body := make([][]string, len(rows))
	copy(body, rows)
	table, err := columnsFromRows(header, body)
	require.NoError(t, err)
	return table
}
