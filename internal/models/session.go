// Package models holds the mutable per-session state of the application.
package models

import (
	"sort"
	"sync"

	"electrolyzer-analyzer/internal/dataset"
)

// SessionRepository is the single owner of session state: the current
// directory, its file listing, the user's selection, and the loaded
// datasets keyed by filename. Nothing here survives the process.
type SessionRepository struct {
	mu        sync.RWMutex
	directory string
	listing   []string
	selection []string
	datasets  map[string]*dataset.Dataset
}

// NewSessionRepository creates an empty session rooted at the given
// default directory.
func NewSessionRepository(defaultDir string) *SessionRepository {
	return &SessionRepository{
		directory: defaultDir,
		datasets:  make(map[string]*dataset.Dataset),
	}
}

// Directory returns the current directory path.
func (r *SessionRepository) Directory() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.directory
}

// SetDirectory changes the current directory and discards the listing and
// selection, which belong to the previous directory.
func (r *SessionRepository) SetDirectory(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directory = dir
	r.listing = nil
	r.selection = nil
}

// SetListing replaces the file listing and clears the selection.
func (r *SessionRepository) SetListing(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listing = append([]string(nil), files...)
	r.selection = nil
}

// Listing returns a copy of the current file listing.
func (r *SessionRepository) Listing() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.listing...)
}

// SetSelection replaces the selection, keeping only names present in the
// current listing and preserving listing order.
func (r *SessionRepository) SetSelection(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chosen := make(map[string]bool, len(files))
	for _, f := range files {
		chosen[f] = true
	}

	r.selection = r.selection[:0]
	for _, f := range r.listing {
		if chosen[f] {
			r.selection = append(r.selection, f)
		}
	}
}

// Selection returns a copy of the current selection.
func (r *SessionRepository) Selection() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.selection...)
}

// PutDataset stores a loaded dataset. Reloading a filename replaces the
// previous dataset for that name.
func (r *SessionRepository) PutDataset(ds *dataset.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[ds.Name] = ds
}

// Dataset returns the dataset loaded for the given filename.
func (r *SessionRepository) Dataset(name string) (*dataset.Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[name]
	return ds, ok
}

// Datasets returns all loaded datasets ordered by filename.
func (r *SessionRepository) Datasets() []*dataset.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*dataset.Dataset, 0, len(names))
	for _, name := range names {
		out = append(out, r.datasets[name])
	}
	return out
}

// ClearDatasets discards all loaded datasets.
func (r *SessionRepository) ClearDatasets() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets = make(map[string]*dataset.Dataset)
}

// SessionStats summarizes the session for the status bar.
type SessionStats struct {
	ListedFiles   int
	SelectedFiles int
	DatasetCount  int
	TotalRows     int
}

// Stats returns a snapshot of the session counters.
func (r *SessionRepository) Stats() SessionStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := SessionStats{
		ListedFiles:   len(r.listing),
		SelectedFiles: len(r.selection),
		DatasetCount:  len(r.datasets),
	}
	for _, ds := range r.datasets {
		stats.TotalRows += ds.NumRows()
	}
	return stats
}
