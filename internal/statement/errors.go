package statement

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the statement file does not exist.
	ErrFileNotFound = errors.New("statement file not found")
	// ErrEncoding is returned for bytes that are not valid in the declared encoding.
	ErrEncoding = errors.New("invalid text encoding")
	// ErrMalformedLine is returned for a line with fewer than five segments.
	ErrMalformedLine = errors.New("malformed line")
	// ErrMalformedDate is returned when the date segment is not YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedAmount is returned when the amount segment is not "<number> <CURRENCY>".
	ErrMalformedAmount = errors.New("malformed amount")
)

// FieldError describes which segment of a line could not be decoded.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// LineError attaches a 1-based line number of the input to a decode failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
