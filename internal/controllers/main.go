// Package controllers connects the views to the services and session state.
package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"electrolyzer-analyzer/internal/dataset"
	"electrolyzer-analyzer/internal/logger"
	"electrolyzer-analyzer/internal/models"
	"electrolyzer-analyzer/internal/services"
	"electrolyzer-analyzer/internal/views"
)

// MainController orchestrates directory scans, batch loads, and analysis
// runs triggered from the main view. Batch work runs on a background
// goroutine; all UI updates go through the view, which is fyne.Do safe.
type MainController struct {
	datasetService  *services.DatasetService
	analysisService *services.AnalysisService
	session         *models.SessionRepository
	logger          logger.Logger

	view *views.MainView

	mu         sync.Mutex
	loading    bool
	loadCancel context.CancelFunc
	report     *services.PolarizationReport
}

// NewMainController creates the main controller.
func NewMainController(
	datasetService *services.DatasetService,
	analysisService *services.AnalysisService,
	session *models.SessionRepository,
	log logger.Logger,
) *MainController {
	return &MainController{
		datasetService:  datasetService,
		analysisService: analysisService,
		session:         session,
		logger:          log,
	}
}

// SetMainView associates the view and wires its handlers.
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.view = view

	view.SetBrowseHandler(mc.BrowseDirectory)
	view.SetScanHandler(mc.ScanDirectory)
	view.SetSelectionHandler(mc.SelectionChanged)
	view.SetLoadHandler(mc.LoadSelected)
	view.SetLoadAllHandler(mc.LoadAll)
	view.SetAnalyzeHandler(mc.AnalyzePolarization)
}

// BrowseDirectory opens the folder picker; the chosen directory becomes the
// current one and the stale file list is cleared.
func (mc *MainController) BrowseDirectory() {
	mc.view.ShowFolderSelect(func(dir string) {
		mc.session.SetDirectory(dir)
		mc.view.SetPath(dir)
		mc.view.SetFiles(nil)
		mc.view.UpdateStatus("Directory selected, read files to list its contents")
	})
}

// ScanDirectory lists the CSV files in the given path and fills the file
// list. Listing errors abort the scan and surface as a single dialog.
func (mc *MainController) ScanDirectory(path string) {
	if strings.TrimSpace(path) == "" {
		mc.view.ShowError(errors.New("no directory path entered"))
		return
	}

	files, err := mc.datasetService.ScanDirectory(path)
	if err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{
			"directory": path,
		})
		mc.view.UpdateStatus("Directory scan failed")
		mc.view.ShowError(err)
		return
	}

	mc.view.SetFiles(files)
	mc.view.UpdateSessionInfo(mc.session.Stats())

	if len(files) == 0 {
		mc.view.UpdateStatus("No CSV files found")
		mc.view.ShowInformation("No Files", "No CSV files found in the selected directory")
		return
	}
	mc.view.UpdateStatus(fmt.Sprintf("Found %d CSV files", len(files)))
}

// SelectionChanged records the user's file selection in the session.
func (mc *MainController) SelectionChanged(selected []string) {
	mc.datasetService.SetSelection(selected)
	mc.view.UpdateSessionInfo(mc.session.Stats())
}

// LoadSelected loads the checked files in the background.
func (mc *MainController) LoadSelected() {
	selected := mc.view.SelectedFiles()
	if len(selected) == 0 {
		mc.view.ShowInformation("No Selection", "Please select at least one file")
		return
	}
	mc.startBatchLoad(selected)
}

// LoadAll selects every listed file and loads the lot.
func (mc *MainController) LoadAll() {
	files := mc.view.ListedFiles()
	if len(files) == 0 {
		mc.view.ShowInformation("No Files", "No files available to load. Please read files first.")
		return
	}
	mc.view.SelectAllFiles()
	mc.datasetService.SetSelection(files)
	mc.startBatchLoad(files)
}

func (mc *MainController) startBatchLoad(files []string) {
	mc.mu.Lock()
	if mc.loading {
		mc.mu.Unlock()
		mc.view.ShowInformation("Busy", "A load is already in progress. Please wait.")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	mc.loading = true
	mc.loadCancel = cancel
	mc.mu.Unlock()

	mc.view.SetLoadingActive(true)
	mc.view.UpdateStatus("Loading files...")
	mc.view.UpdateProgress("Starting file load...", 0)

	go mc.performBatchLoad(ctx, files)
}

func (mc *MainController) performBatchLoad(ctx context.Context, files []string) {
	defer func() {
		mc.mu.Lock()
		mc.loading = false
		mc.loadCancel = nil
		mc.mu.Unlock()
		mc.view.SetLoadingActive(false)
	}()

	progress := func(done, total int, file string) {
		mc.view.UpdateProgress(
			fmt.Sprintf("Reading %s...", file),
			float64(done)/float64(total),
		)
	}

	results := mc.datasetService.LoadSelection(ctx, files, progress)
	summary := services.Summarize(results)

	mc.view.SetBatchResults(formatResults(results))
	mc.view.UpdateSessionInfo(mc.session.Stats())
	mc.view.UpdateStatus(summary.String())
	mc.updateCombinedInfo(ctx)
}

// updateCombinedInfo refreshes the combined-frame description after a load.
func (mc *MainController) updateCombinedInfo(ctx context.Context) {
	df, _, err := mc.analysisService.CombineLoaded(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNoDatasets) {
			mc.logger.Error("MainController", err, nil)
		}
		mc.view.SetCombinedInfo("Combined data: none")
		return
	}
	mc.view.SetCombinedInfo(fmt.Sprintf("Combined data: %d rows, %d columns",
		df.NRows(), len(df.Series)))
}

// AnalyzePolarization detects polarization tests over the loaded datasets
// in the background.
func (mc *MainController) AnalyzePolarization() {
	mc.view.UpdateStatus("Analyzing polarization tests...")

	go func() {
		report, err := mc.analysisService.DetectPolarization(context.Background())
		if err != nil {
			mc.logger.Error("MainController", err, nil)
			mc.view.UpdateStatus("Polarization analysis failed")
			mc.view.ShowError(err)
			return
		}

		mc.mu.Lock()
		mc.report = report
		mc.mu.Unlock()

		mc.view.SetTests(formatTests(report))
		mc.view.UpdateStatus(fmt.Sprintf("Found %d polarization tests", len(report.Tests)))
	}()
}

// Report returns the latest polarization report, if any.
func (mc *MainController) Report() *services.PolarizationReport {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.report
}

// Shutdown cancels any running batch load.
func (mc *MainController) Shutdown() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.loadCancel != nil {
		mc.loadCancel()
	}
}

func formatResults(results []dataset.FileResult) []string {
	lines := make([]string, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			lines = append(lines, fmt.Sprintf("%s: failed: %v", res.File, res.Err))
			continue
		}
		line := fmt.Sprintf("%s: %d rows, %d columns",
			res.File, res.Dataset.NumRows(), res.Dataset.NumColumns())
		if res.Dataset.SkippedRows > 0 {
			line += fmt.Sprintf(" (%d malformed rows skipped)", res.Dataset.SkippedRows)
		}
		lines = append(lines, line)
	}
	return lines
}

func formatTests(report *services.PolarizationReport) []string {
	lines := make([]string, 0, len(report.Tests))
	for i, test := range report.Tests {
		lines = append(lines, fmt.Sprintf("%d. %s %s (%.1fs, %d steps)",
			i+1,
			test.StartTime.Format("2006-01-02 15:04:05"),
			test.Direction,
			test.Duration.Seconds(),
			test.StepCount,
		))
	}
	return lines
}
