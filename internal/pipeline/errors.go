package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedComposite = errors.New("malformed composite column")
	ErrInvalidYear        = errors.New("invalid year")
	ErrMalformedRecord    = errors.New("malformed record")
)

type UnsupportedFormatError struct {
	Format string
	Valid  []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q: must be one of %s", e.Format, strings.Join(e.Valid, ", "))
}

type UnsupportedSourceError struct {
	Source string
	Err    error
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Source, e.Err)
}

func (e *UnsupportedSourceError) Unwrap() error { return e.Err }

type UnrecognizedSchemaError struct {
	Columns []string
}

func (e *UnrecognizedSchemaError) Error() string {
	return fmt.Sprintf("unrecognized table schema, columns: [%s]", strings.Join(e.Columns, ", "))
}
