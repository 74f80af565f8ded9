package stats

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify failures with errors.Is.
var (
	ErrIO    = errors.New("i/o error")
	ErrParse = errors.New("parse error")
	// ErrShortRow is wrapped by a ParseError when a row carries fewer than Columns fields.
	ErrShortRow = errors.New("row has fewer than 5 fields")
	// ErrSeriesLengthMismatch reports a Run whose series disagree on the number of generations.
	ErrSeriesLengthMismatch = errors.New("series length mismatch")
)

// ParseError describes a row or field that could not be turned into numbers.
type ParseError struct {
	Path  string
	Line  int
	Field int // 1-based; 0 when the row as a whole is at fault
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field > 0 {
		return fmt.Sprintf("%s:%d: field %d (%q): %v", e.Path, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
