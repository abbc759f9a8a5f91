// Package views builds the Fyne main window.
package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"electrolyzer-analyzer/internal/models"
	"electrolyzer-analyzer/internal/views/components"
)

// MainView is the single window of the application: folder navigation on
// top, the file list and the load/analysis summary side by side, and the
// status bar with the batch progress at the bottom.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container

	folderNav *components.FolderNav
	fileList  *components.FileList
	summary   *components.SummaryPanel
	statusBar *components.StatusBar
	progress  *components.ProgressBar
}

// NewMainView creates the main view with the given initial directory path.
func NewMainView(window fyne.Window, initialPath string) *MainView {
	mv := &MainView{window: window}
	mv.initializeComponents(initialPath)
	mv.buildLayout()
	return mv
}

func (mv *MainView) initializeComponents(initialPath string) {
	mv.folderNav = components.NewFolderNav(initialPath)
	mv.fileList = components.NewFileList()
	mv.summary = components.NewSummaryPanel()
	mv.statusBar = components.NewStatusBar()
	mv.progress = components.NewProgressBar()
}

func (mv *MainView) buildLayout() {
	center := container.NewHSplit(
		mv.fileList.GetContainer(),
		mv.summary.GetContainer(),
	)
	center.SetOffset(0.4)

	bottom := container.NewVBox(
		mv.progress.GetContainer(),
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		mv.folderNav.GetContainer(), // top
		bottom,                      // bottom
		nil,
		nil,
		center,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Handler setters, called by the controller.

// SetBrowseHandler sets the handler for the Browse button.
func (mv *MainView) SetBrowseHandler(handler func()) {
	mv.folderNav.SetBrowseHandler(handler)
}

// SetScanHandler sets the handler for the Read Files trigger.
func (mv *MainView) SetScanHandler(handler func(path string)) {
	mv.folderNav.SetScanHandler(handler)
}

// SetSelectionHandler sets the handler for file selection changes.
func (mv *MainView) SetSelectionHandler(handler func(selected []string)) {
	mv.fileList.SetSelectionHandler(handler)
}

// SetLoadHandler sets the handler for the Load Selected Files trigger.
func (mv *MainView) SetLoadHandler(handler func()) {
	mv.fileList.SetLoadHandler(handler)
}

// SetLoadAllHandler sets the handler for the Load All Files trigger.
func (mv *MainView) SetLoadAllHandler(handler func()) {
	mv.fileList.SetLoadAllHandler(handler)
}

// SetAnalyzeHandler sets the handler for the polarization analysis trigger.
func (mv *MainView) SetAnalyzeHandler(handler func()) {
	mv.summary.SetAnalyzeHandler(handler)
}

// View operations, called by the controller.

// ShowFolderSelect opens the native folder picker rooted at the current
// path and hands the chosen directory to the callback.
func (mv *MainView) ShowFolderSelect(callback func(dir string)) {
	fyne.Do(func() {
		folderDialog := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				mv.ShowError(err)
				return
			}
			if uri == nil {
				return
			}
			callback(uri.Path())
		}, mv.window)

		if listable, err := storage.ListerForURI(storage.NewFileURI(mv.folderNav.Path())); err == nil {
			folderDialog.SetLocation(listable)
		}
		folderDialog.Show()
	})
}

// SetPath updates the directory path entry.
func (mv *MainView) SetPath(path string) {
	mv.folderNav.SetPath(path)
}

// SetFiles replaces the file list contents and clears the selection.
func (mv *MainView) SetFiles(files []string) {
	mv.fileList.SetFiles(files)
}

// ListedFiles returns all filenames currently shown in the file list.
func (mv *MainView) ListedFiles() []string {
	return mv.fileList.Files()
}

// SelectedFiles returns the checked filenames.
func (mv *MainView) SelectedFiles() []string {
	return mv.fileList.Selected()
}

// SelectAllFiles checks every listed file.
func (mv *MainView) SelectAllFiles() {
	mv.fileList.SelectAll()
}

// SetLoadingActive toggles the load triggers and progress bar for a
// running batch load.
func (mv *MainView) SetLoadingActive(active bool) {
	mv.fileList.SetLoading(active)
	mv.progress.SetVisible(active)
	mv.summary.SetAnalyzeEnabled(!active)
}

// UpdateProgress updates the batch progress bar.
func (mv *MainView) UpdateProgress(stage string, fraction float64) {
	mv.progress.SetProgress(stage, fraction)
}

// UpdateStatus updates the status bar message.
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// UpdateSessionInfo updates the session counters in the status bar.
func (mv *MainView) UpdateSessionInfo(stats models.SessionStats) {
	mv.statusBar.SetSessionInfo(stats)
}

// SetBatchResults shows the per-file outcome of the last batch load.
func (mv *MainView) SetBatchResults(lines []string) {
	mv.summary.SetResults(lines)
}

// SetCombinedInfo shows the combined-frame description.
func (mv *MainView) SetCombinedInfo(info string) {
	mv.summary.SetCombinedInfo(info)
}

// SetTests shows the detected polarization test lines.
func (mv *MainView) SetTests(lines []string) {
	mv.summary.SetTests(lines)
}

// ShowError presents an error dialog.
func (mv *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ShowInformation presents an information dialog.
func (mv *MainView) ShowInformation(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// Show displays the main window.
func (mv *MainView) Show() {
	mv.window.Show()
}

// GetMainContainer returns the root container.
func (mv *MainView) GetMainContainer() *fyne.Container {
	return mv.mainContainer
}
