package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SummaryPanel shows the outcome of the last batch load, the combined-frame
// shape, and the detected polarization tests.
type SummaryPanel struct {
	container  *fyne.Container
	results    *widget.Label
	combined   *widget.Label
	tests      *widget.Label
	analyzeBtn *widget.Button

	analyzeHandler func()
}

// NewSummaryPanel creates an empty summary panel.
func NewSummaryPanel() *SummaryPanel {
	sp := &SummaryPanel{}
	sp.createComponents()
	sp.buildLayout()
	return sp
}

func (sp *SummaryPanel) createComponents() {
	sp.results = widget.NewLabel("No files loaded yet")
	sp.results.Wrapping = fyne.TextWrapWord

	sp.combined = widget.NewLabel("Combined data: none")
	sp.combined.Wrapping = fyne.TextWrapWord

	sp.tests = widget.NewLabel("No polarization analysis performed")
	sp.tests.Wrapping = fyne.TextWrapWord

	sp.analyzeBtn = widget.NewButton("Analyze Polarization Tests", func() {
		if sp.analyzeHandler != nil {
			sp.analyzeHandler()
		}
	})
}

func (sp *SummaryPanel) buildLayout() {
	content := container.NewVBox(
		widget.NewLabelWithStyle("Load Results", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.results,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Combined Data", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.combined,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Polarization Tests", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.analyzeBtn,
		sp.tests,
	)
	scroll := container.NewVScroll(content)
	scroll.SetMinSize(fyne.NewSize(420, 220))
	sp.container = container.NewStack(scroll)
}

// SetResults replaces the per-file batch outcome lines.
func (sp *SummaryPanel) SetResults(lines []string) {
	fyne.Do(func() {
		if len(lines) == 0 {
			sp.results.SetText("No files loaded yet")
			return
		}
		sp.results.SetText(strings.Join(lines, "\n"))
	})
}

// SetCombinedInfo updates the combined-frame description.
func (sp *SummaryPanel) SetCombinedInfo(info string) {
	fyne.Do(func() {
		sp.combined.SetText(info)
	})
}

// SetTests replaces the detected polarization test lines.
func (sp *SummaryPanel) SetTests(lines []string) {
	fyne.Do(func() {
		if len(lines) == 0 {
			sp.tests.SetText("No polarization tests detected")
			return
		}
		sp.tests.SetText(strings.Join(lines, "\n"))
	})
}

// SetAnalyzeEnabled toggles the analyze trigger.
func (sp *SummaryPanel) SetAnalyzeEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			sp.analyzeBtn.Enable()
		} else {
			sp.analyzeBtn.Disable()
		}
	})
}

// SetAnalyzeHandler sets the handler for the analyze trigger.
func (sp *SummaryPanel) SetAnalyzeHandler(handler func()) {
	sp.analyzeHandler = handler
}

// Reset restores the panel to its initial state.
func (sp *SummaryPanel) Reset() {
	fyne.Do(func() {
		sp.results.SetText("No files loaded yet")
		sp.combined.SetText("Combined data: none")
		sp.tests.SetText("No polarization analysis performed")
	})
}

// GetContainer returns the summary panel container.
func (sp *SummaryPanel) GetContainer() *fyne.Container {
	return sp.container
}
