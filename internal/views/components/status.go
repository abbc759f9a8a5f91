package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"electrolyzer-analyzer/internal/models"
)

// StatusBar displays the current status message and session counters.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	sessionInfo *widget.Label
}

// NewStatusBar creates a new status bar component.
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.sessionInfo = widget.NewLabel("No data loaded")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.sessionInfo,
	)
}

// SetStatus updates the main status message.
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// SetSessionInfo updates the session counters display.
func (sb *StatusBar) SetSessionInfo(stats models.SessionStats) {
	fyne.Do(func() {
		if stats.DatasetCount == 0 {
			sb.sessionInfo.SetText("No data loaded")
			return
		}
		sb.sessionInfo.SetText(fmt.Sprintf("Datasets: %d, rows: %d", stats.DatasetCount, stats.TotalRows))
	})
}

// Reset restores the status bar to its initial state.
func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText("Ready")
		sb.sessionInfo.SetText("No data loaded")
	})
}

// GetContainer returns the status bar container.
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// ProgressBar displays batch-load progress with a stage label. It is hidden
// outside of an active load.
type ProgressBar struct {
	container   *fyne.Container
	progressBar *widget.ProgressBar
	stageLabel  *widget.Label
}

// NewProgressBar creates a new progress bar component.
func NewProgressBar() *ProgressBar {
	pb := &ProgressBar{}
	pb.createComponents()
	pb.buildLayout()
	return pb
}

func (pb *ProgressBar) createComponents() {
	pb.progressBar = widget.NewProgressBar()
	pb.progressBar.SetValue(0.0)
	pb.stageLabel = widget.NewLabel("")
}

func (pb *ProgressBar) buildLayout() {
	pb.container = container.NewVBox(
		pb.stageLabel,
		pb.progressBar,
	)
	pb.container.Hide()
}

// SetProgress updates the progress value (0.0 to 1.0) and stage text.
func (pb *ProgressBar) SetProgress(stage string, progress float64) {
	fyne.Do(func() {
		if progress < 0.0 {
			progress = 0.0
		} else if progress > 1.0 {
			progress = 1.0
		}
		pb.stageLabel.SetText(stage)
		pb.progressBar.SetValue(progress)
	})
}

// SetVisible shows or hides the progress bar.
func (pb *ProgressBar) SetVisible(visible bool) {
	fyne.Do(func() {
		if visible {
			pb.container.Show()
		} else {
			pb.container.Hide()
		}
	})
}

// Reset clears progress and hides the bar.
func (pb *ProgressBar) Reset() {
	fyne.Do(func() {
		pb.progressBar.SetValue(0.0)
		pb.stageLabel.SetText("")
		pb.container.Hide()
	})
}

// GetContainer returns the progress bar container.
func (pb *ProgressBar) GetContainer() *fyne.Container {
	return pb.container
}
