package pipeline

import "lifeexp/internal"

type Schema string

const (
	SchemaWide Schema = "wide"
	SchemaFlat Schema = "flat"
)

const (
	// CompositeColumn is the literal first header of the Eurostat wide table.
	CompositeColumn = `unit,sex,age,geo\time`

	FlatCountryColumn = "country"
	FlatValueColumn   = "life_expectancy"
)

var flatColumns = []string{
	internal.ColUnit, internal.ColSex, internal.ColAge, FlatCountryColumn, internal.ColYear, FlatValueColumn,
}

// DetectSchema classifies a raw table by its column names.
func DetectSchema(raw *internal.RawTable) (Schema, error) {
	if raw.Has(CompositeColumn) {
		return SchemaWide, nil
	}
	for _, c := range flatColumns {
		if !raw.Has(c) {
			return "", &UnrecognizedSchemaError{Columns: raw.Columns()}
		}
	}
	return SchemaFlat, nil
}
