package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"lifeexp/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  region TEXT NOT NULL,
  format TEXT NOT NULL,
  source TEXT NOT NULL,
  output TEXT NOT NULL,
  outputFormat TEXT NOT NULL,
  rowCount INTEGER NOT NULL,
  summaryJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS life_expectancy (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  lineNo INTEGER NOT NULL,
  unit TEXT NOT NULL,
  sex TEXT NOT NULL,
  age TEXT NOT NULL,
  region TEXT NOT NULL,
  year INTEGER NOT NULL,
  value REAL NOT NULL,
  UNIQUE(runId, lineNo),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_life_expectancy_region_year ON life_expectancy(region, year);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveRun stores one run and its cleaned rows in a single transaction.
func (d *DB) SaveRun(run internal.RunRow, records internal.CleanedTable, summary any) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO runs (id, region, format, source, output, outputFormat, rowCount, summaryJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.Region, run.Format, run.Source, run.Output, run.OutputFormat, len(records), string(summaryJSON)); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO life_expectancy (runId, lineNo, unit, sex, age, region, year, value)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(run.ID, i+1, r.Unit, r.Sex, r.Age, r.Region, r.Year, r.Value); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, region, format, source, output, outputFormat, rowCount, createdAt
FROM runs
ORDER BY createdAt DESC, rowid DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.Region, &r.Format, &r.Source, &r.Output, &r.OutputFormat, &r.Rows, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) GetRun(id string) (*internal.RunRow, error) {
	var r internal.RunRow
	err := d.conn.QueryRow(`
SELECT id, region, format, source, output, outputFormat, rowCount, createdAt
FROM runs WHERE id = ?`, id).Scan(&r.ID, &r.Region, &r.Format, &r.Source, &r.Output, &r.OutputFormat, &r.Rows, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RecordsForRun returns the rows of a run in insertion order.
func (d *DB) RecordsForRun(id string) (internal.CleanedTable, error) {
	rows, err := d.conn.Query(`
SELECT unit, sex, age, region, year, value
FROM life_expectancy WHERE runId = ?
ORDER BY lineNo ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := internal.CleanedTable{}
	for rows.Next() {
		var r internal.CleanedRecord
		if err := rows.Scan(&r.Unit, &r.Sex, &r.Age, &r.Region, &r.Year, &r.Value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
