package catalog

import (
	"fmt"
	"strings"
)

// Region is a Eurostat geo code from the closed catalog below.
type Region string

const (
	AT         Region = "AT"
	BE         Region = "BE"
	BG         Region = "BG"
	CH         Region = "CH"
	CY         Region = "CY"
	CZ         Region = "CZ"
	DK         Region = "DK"
	EE         Region = "EE"
	EL         Region = "EL"
	ES         Region = "ES"
	EU27_2020  Region = "EU27_2020"
	FI         Region = "FI"
	FR         Region = "FR"
	HR         Region = "HR"
	HU         Region = "HU"
	IS         Region = "IS"
	IT         Region = "IT"
	LI         Region = "LI"
	LT         Region = "LT"
	LU         Region = "LU"
	LV         Region = "LV"
	MT         Region = "MT"
	NL         Region = "NL"
	NO         Region = "NO"
	PL         Region = "PL"
	PT         Region = "PT"
	RO         Region = "RO"
	SE         Region = "SE"
	SI         Region = "SI"
	SK         Region = "SK"
	DE         Region = "DE"
	DE_TOT     Region = "DE_TOT"
	AL         Region = "AL"
	EA18       Region = "EA18"
	EA19       Region = "EA19"
	EFTA       Region = "EFTA"
	IE         Region = "IE"
	ME         Region = "ME"
	MK         Region = "MK"
	RS         Region = "RS"
	AM         Region = "AM"
	AZ         Region = "AZ"
	GE         Region = "GE"
	TR         Region = "TR"
	UA         Region = "UA"
	BY         Region = "BY"
	EEA30_2007 Region = "EEA30_2007"
	EEA31      Region = "EEA31"
	EU27_2007  Region = "EU27_2007"
	EU28       Region = "EU28"
	UK         Region = "UK"
	XK         Region = "XK"
	FX         Region = "FX"
	MD         Region = "MD"
	SM         Region = "SM"
	RU         Region = "RU"
)

var all = []Region{
	AT, BE, BG, CH, CY, CZ, DK, EE, EL, ES, EU27_2020, FI, FR, HR, HU, IS, IT, LI, LT, LU, LV, MT, NL, NO,
	PL, PT, RO, SE, SI, SK, DE, DE_TOT, AL, EA18, EA19, EFTA, IE, ME, MK, RS, AM, AZ, GE, TR, UA, BY,
	EEA30_2007, EEA31, EU27_2007, EU28, UK, XK, FX, MD, SM, RU,
}

// Supranational and economic-area rollups, not single countries.
var aggregates = map[Region]struct{}{
	DE_TOT:     {},
	EU27_2020:  {},
	EU27_2007:  {},
	EU28:       {},
	EEA30_2007: {},
	EEA31:      {},
	EFTA:       {},
	EA18:       {},
	EA19:       {},
}

var index = buildIndex(all)

type InvalidRegionError struct {
	Input string
	Valid []string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region %q: must be one of %s", e.Input, strings.Join(e.Valid, ", "))
}

// ParseRegion returns the catalog entry matching s exactly (case-sensitive).
func ParseRegion(s string) (Region, error) {
	if r, ok := index[s]; ok {
		return r, nil
	}
	return "", &InvalidRegionError{Input: s, Valid: Codes()}
}

func MustParseRegion(s string) Region {
	r, err := ParseRegion(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Region) String() string { return string(r) }

func (r Region) IsAggregate() bool {
	_, ok := aggregates[r]
	return ok
}

func IsKnown(code string) bool {
	_, ok := index[code]
	return ok
}

// Regions returns the whole catalog in declaration order.
func Regions() []Region {
	out := make([]Region, len(all))
	copy(out, all)
	return out
}

// Countries returns the catalog without aggregate regions, in declaration order.
func Countries() []Region {
	out := make([]Region, 0, len(all)-len(aggregates))
	for _, r := range all {
		if !r.IsAggregate() {
			out = append(out, r)
		}
	}
	return out
}

func Codes() []string {
	out := make([]string, 0, len(all))
	for _, r := range all {
		out = append(out, string(r))
	}
	return out
}
