package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"lifeexp/internal"
	"lifeexp/internal/util"
)

// WriteCSV writes the canonical header and one line per record, without an index column.
func WriteCSV(w io.Writer, table internal.CleanedTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(internal.CanonicalHeader); err != nil {
		return err
	}
	for _, r := range table {
		line := []string{r.Unit, r.Sex, r.Age, r.Region, strconv.Itoa(r.Year), util.FormatMeasure(r.Value)}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(table internal.CleanedTable, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, table); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func ExportXLSX(table internal.CleanedTable, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range internal.CanonicalHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range table {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Unit)
		set(2, row.Sex)
		set(3, row.Age)
		set(4, row.Region)
		set(5, row.Year)
		set(6, row.Value)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
