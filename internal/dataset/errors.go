package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidFileFormat marks a file that cannot be parsed at all: fewer than
// four physical lines, binary content, or invalid UTF-8.
var ErrInvalidFileFormat = errors.New("invalid file format")

// InvalidFormatError carries the offending file and the reason it was
// rejected. It matches ErrInvalidFileFormat via errors.Is.
type InvalidFormatError struct {
	File   string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, ErrInvalidFileFormat, e.Reason)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFileFormat
}

// RowParseError reports a malformed data row under PolicyStrict. Line is the
// 1-based physical line number in the source file.
type RowParseError struct {
	File string
	Line int
	Err  error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("%s: row parse error at line %d: %v", e.File, e.Line, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}
