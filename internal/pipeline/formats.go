package pipeline

import "strings"

type Format string

const (
	FormatTSV  Format = "tsv"
	FormatZip  Format = "zip"
	FormatHTML Format = "html"
)

type OutputFormat string

const (
	OutputCSV    OutputFormat = "csv"
	OutputXLSX   OutputFormat = "xlsx"
	OutputSQLite OutputFormat = "sqlite"
)

var loaders = map[Format]Loader{
	FormatTSV:  TSVLoader{},
	FormatZip:  ZipJSONLoader{},
	FormatHTML: HTMLTableLoader{},
}

// ParseFormat resolves a source format discriminator and its aliases.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "json", "zipjson", "zip_json":
		normalized = string(FormatZip)
	case "htm":
		normalized = string(FormatHTML)
	}
	f := Format(normalized)
	if _, ok := loaders[f]; !ok {
		return "", &UnsupportedFormatError{Format: value, Valid: []string{string(FormatTSV), string(FormatZip), string(FormatHTML)}}
	}
	return f, nil
}

// LoaderFor returns the loader registered for a format discriminator without touching the filesystem.
func LoaderFor(value string) (Loader, error) {
	f, err := ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return loaders[f], nil
}

func (f Format) Extension() string {
	return string(f)
}

func ParseOutputFormat(value string) (OutputFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(OutputCSV):
		return OutputCSV, nil
	case "excel", string(OutputXLSX):
		return OutputXLSX, nil
	case "db", "sqlite3", string(OutputSQLite):
		return OutputSQLite, nil
	default:
		return "", &UnsupportedFormatError{Format: value, Valid: []string{string(OutputCSV), string(OutputXLSX), string(OutputSQLite)}}
	}
}

func (f OutputFormat) Extension() string {
	if f == OutputSQLite {
		return "db"
	}
	return string(f)
}
