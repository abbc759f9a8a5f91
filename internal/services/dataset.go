// Package services implements the operations the controller triggers on
// behalf of the GUI.
package services

import (
	"context"
	"fmt"
	"path/filepath"

	"electrolyzer-analyzer/internal/dataset"
	"electrolyzer-analyzer/internal/fs"
	"electrolyzer-analyzer/internal/logger"
	"electrolyzer-analyzer/internal/models"
)

// DatasetService owns directory scanning and batch loading against the
// session repository.
type DatasetService struct {
	lister  *fs.Lister
	loader  *dataset.Loader
	session *models.SessionRepository
	logger  logger.Logger
}

// NewDatasetService creates a new dataset service.
func NewDatasetService(lister *fs.Lister, loader *dataset.Loader, session *models.SessionRepository, log logger.Logger) *DatasetService {
	return &DatasetService{
		lister:  lister,
		loader:  loader,
		session: session,
		logger:  log,
	}
}

// ScanDirectory lists the CSV files in dir and makes it the session's
// current directory. The previous listing and selection are discarded.
func (s *DatasetService) ScanDirectory(dir string) ([]string, error) {
	files, err := s.lister.ListCSV(dir)
	if err != nil {
		return nil, err
	}

	s.session.SetDirectory(dir)
	s.session.SetListing(files)

	s.logger.Info("DatasetService", "directory scanned", map[string]interface{}{
		"directory": dir,
		"files":     len(files),
	})

	return files, nil
}

// SetSelection records which listed files the user has chosen.
func (s *DatasetService) SetSelection(files []string) {
	s.session.SetSelection(files)
}

// LoadSelection loads the given filenames from the session's current
// directory. Successful datasets are stored in the session (replacing any
// previous dataset with the same name); every file gets a result either way.
func (s *DatasetService) LoadSelection(ctx context.Context, files []string, progress dataset.ProgressFunc) []dataset.FileResult {
	dir := s.session.Directory()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(dir, f)
	}

	results := s.loader.LoadBatch(ctx, paths, progress)

	loaded := 0
	for _, res := range results {
		if res.Err == nil {
			s.session.PutDataset(res.Dataset)
			loaded++
		}
	}

	s.logger.Info("DatasetService", "batch load finished", map[string]interface{}{
		"requested": len(files),
		"loaded":    loaded,
		"failed":    len(files) - loaded,
	})

	return results
}

// BatchSummary condenses batch results for the status line.
type BatchSummary struct {
	Loaded    int
	Failed    int
	TotalRows int
}

// Summarize tallies a batch result set.
func Summarize(results []dataset.FileResult) BatchSummary {
	var summary BatchSummary
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			continue
		}
		summary.Loaded++
		summary.TotalRows += res.Dataset.NumRows()
	}
	return summary
}

// String renders the summary for display.
func (b BatchSummary) String() string {
	return fmt.Sprintf("%d file(s) loaded, %d failed, %d total rows", b.Loaded, b.Failed, b.TotalRows)
}
