package pipeline

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lifeexp/internal"
	"lifeexp/internal/util"
)

// Loader reads one source encoding into a RawTable.
type Loader interface {
	Load(path string) (*internal.RawTable, error)
}

// TSVLoader reads the Eurostat wide table. Headers and cells are kept verbatim.
type TSVLoader struct{}

func (TSVLoader) Load(path string) (*internal.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	defer f.Close()

	table, err := readDelimited(f, '\t')
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	return table, nil
}

func readDelimited(r io.Reader, comma rune) (*internal.RawTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return columnsFromRows(header, records[1:])
}

func columnsFromRows(header []string, rows [][]string) (*internal.RawTable, error) {
	table := internal.NewRawTable()
	for c, name := range header {
		values := make([]any, len(rows))
		for r, row := range rows {
			if len(row) != len(header) {
				return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(header))
			}
			values[r] = row[c]
		}
		if err := table.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ZipJSONLoader reads a zip archive whose first entry is a JSON array of flat records.
type ZipJSONLoader struct{}

func (ZipJSONLoader) Load(path string) (*internal.RawTable, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return nil, &UnsupportedSourceError{Source: path, Err: errors.New("archive has no entries")}
	}
	entry := zr.File[0]
	rc, err := entry.Open()
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	defer rc.Close()

	table, err := decodeRecords(rc)
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path + ":" + entry.Name, Err: err}
	}
	return table, nil
}

func decodeRecords(r io.Reader) (*internal.RawTable, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	order := []string{}
	seen := map[string]struct{}{}
	rows := []map[string]any{}
	for dec.More() {
		keys, row, err := decodeFlatObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(rows), err)
		}
		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				order = append(order, key)
			}
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	table := internal.NewRawTable()
	for _, key := range order {
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = row[key]
		}
		if err := table.AddColumn(key, values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// decodeFlatObject reads one object, returning its keys in document order.
func decodeFlatObject(dec *json.Decoder) ([]string, map[string]any, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	keys := []string{}
	row := map[string]any{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, nil, fmt.Errorf("field %q is not a scalar", key)
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = v
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return keys, row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// HTMLTableLoader reads the first <table> of an HTML export of the wide table.
type HTMLTableLoader struct{}

func (HTMLTableLoader) Load(path string) (*internal.RawTable, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	table, err := parseHTMLTable(blob)
	if err != nil {
		return nil, &UnsupportedSourceError{Source: path, Err: err}
	}
	return table, nil
}

func parseHTMLTable(blob []byte) (*internal.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("no table element")
	}
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, errors.New("table has no rows")
	}

	header := []string{}
	rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, util.NormalizeSpaces(cell.Text()))
	})

	body := [][]string{}
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.NormalizeSpaces(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		body = append(body, cells)
	})
	return columnsFromRows(header, body)
}
