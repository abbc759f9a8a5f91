// Package fs enumerates data files in a user-chosen directory.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"electrolyzer-analyzer/internal/logger"
)

// Error kinds surfaced to the caller. Listing never returns a silent empty
// result for an unusable directory.
var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNotADirectory     = errors.New("not a directory")
	ErrPermissionDenied  = errors.New("permission denied")
)

// DataFileExt is the only extension recognized as a loadable data file.
const DataFileExt = ".csv"

// Lister enumerates CSV files inside a directory. Listing is non-recursive
// and uncached: every call reflects the current filesystem state.
type Lister struct {
	logger logger.Logger
}

// NewLister creates a new Lister.
func NewLister(log logger.Logger) *Lister {
	return &Lister{logger: log}
}

// ListCSV returns the names of all CSV files directly inside dir, in sorted
// order. Subdirectories are ignored.
func (l *Lister) ListCSV(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	switch {
	case err != nil && os.IsNotExist(err):
		return nil, fmt.Errorf("%s: %w", dir, ErrDirectoryNotFound)
	case err != nil && os.IsPermission(err):
		return nil, fmt.Errorf("%s: %w", dir, ErrPermissionDenied)
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrPermissionDenied)
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	// os.ReadDir sorts by filename, which gives the stable order the file
	// list relies on.
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), DataFileExt) {
			continue
		}
		names = append(names, entry.Name())
	}

	l.logger.Debug("Lister", "directory scanned", map[string]interface{}{
		"directory": dir,
		"csv_files": len(names),
	})

	return names, nil
}
