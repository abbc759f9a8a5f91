package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"electrolyzer-analyzer/internal/logger"
)

// MetadataLines is the fixed number of leading non-data lines in every
// export (group, datatype, default). Their content is never inspected.
const MetadataLines = 3

// binaryCheckSize bounds how many leading bytes are inspected for binary
// content before parsing.
const binaryCheckSize = 1024

// RowPolicy selects how a data row whose field count differs from the
// header is handled.
type RowPolicy int

const (
	// PolicySkip drops malformed rows and keeps loading. The default.
	PolicySkip RowPolicy = iota
	// PolicyStrict aborts the file load on the first malformed row and
	// reports its line number.
	PolicyStrict
)

// String returns the config spelling of the policy.
func (p RowPolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

// ParseRowPolicy maps a config value to a RowPolicy.
func ParseRowPolicy(s string) RowPolicy {
	if strings.EqualFold(s, "strict") {
		return PolicyStrict
	}
	return PolicySkip
}

// FileResult is the per-file outcome of a batch load: either a Dataset or
// the reason loading failed.
type FileResult struct {
	File    string
	Dataset *Dataset
	Err     error
}

// ProgressFunc receives batch progress after each file finishes.
type ProgressFunc func(done, total int, file string)

// Loader reads time-series CSV exports into Datasets.
type Loader struct {
	logger logger.Logger
	policy RowPolicy
}

// NewLoader creates a loader with the given row-validation policy.
func NewLoader(log logger.Logger, policy RowPolicy) *Loader {
	return &Loader{logger: log, policy: policy}
}

// Policy returns the active row-validation policy.
func (l *Loader) Policy() RowPolicy {
	return l.policy
}

// LoadFile parses a single export file. The first MetadataLines physical
// lines are discarded, the next line is the column header, and everything
// after it is data. Values are kept verbatim as strings.
func (l *Loader) LoadFile(path string) (*Dataset, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if isBinary(data) {
		return nil, &InvalidFormatError{File: name, Reason: "binary content"}
	}
	if !utf8.Valid(data) {
		return nil, &InvalidFormatError{File: name, Reason: "invalid UTF-8 encoding"}
	}

	body, err := skipPreamble(data, name)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(body))
	// Field counts are validated here, not by the csv reader, so the
	// configured policy decides what happens to ragged rows.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &InvalidFormatError{File: name, Reason: fmt.Sprintf("unreadable header row: %v", err)}
	}
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}

	ds := &Dataset{Name: name, Columns: columns}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := physicalLine(err)
			if l.policy == PolicyStrict {
				return nil, &RowParseError{File: name, Line: line, Err: err}
			}
			ds.SkippedRows++
			continue
		}
		if len(record) != len(columns) {
			line, _ := reader.FieldPos(0)
			if l.policy == PolicyStrict {
				return nil, &RowParseError{
					File: name,
					Line: line + MetadataLines,
					Err:  fmt.Errorf("expected %d fields, got %d", len(columns), len(record)),
				}
			}
			ds.SkippedRows++
			continue
		}
		ds.Rows = append(ds.Rows, record)
	}

	l.logger.Debug("Loader", "file loaded", map[string]interface{}{
		"file":    name,
		"columns": ds.NumColumns(),
		"rows":    ds.NumRows(),
		"skipped": ds.SkippedRows,
	})

	return ds, nil
}

// LoadBatch loads each path in order and returns one FileResult per path.
// A failing file never stops the rest of the batch; cancelling the context
// stops between files, marking the remaining results with the context error.
func (l *Loader) LoadBatch(ctx context.Context, paths []string, progress ProgressFunc) []FileResult {
	total := len(paths)
	results := make([]FileResult, 0, total)

	for i, path := range paths {
		name := filepath.Base(path)

		select {
		case <-ctx.Done():
			results = append(results, FileResult{File: name, Err: ctx.Err()})
			continue
		default:
		}

		ds, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warning("Loader", "file load failed", map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			})
		}
		results = append(results, FileResult{File: name, Dataset: ds, Err: err})

		if progress != nil {
			progress(i+1, total, name)
		}
	}

	return results
}

// skipPreamble drops the metadata lines and returns the rest of the file,
// which must still contain at least a header line.
func skipPreamble(data []byte, name string) ([]byte, error) {
	rest := data
	for i := 0; i < MetadataLines; i++ {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return nil, &InvalidFormatError{File: name, Reason: "file has fewer than 4 lines"}
		}
		rest = rest[idx+1:]
	}
	if len(bytes.TrimSpace(rest)) == 0 {
		return nil, &InvalidFormatError{File: name, Reason: "file has fewer than 4 lines"}
	}
	return rest, nil
}

// physicalLine extracts the source-file line number from a csv parse error.
func physicalLine(err error) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line + MetadataLines
	}
	return 0
}

// isBinary reports whether the leading bytes look like binary rather than
// text: NUL bytes or control characters below horizontal tab.
func isBinary(content []byte) bool {
	checkSize := binaryCheckSize
	if len(content) < checkSize {
		checkSize = len(content)
	}
	for _, b := range content[:checkSize] {
		if b < 0x09 {
			return true
		}
	}
	return false
}
