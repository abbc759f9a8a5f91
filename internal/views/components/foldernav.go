// Package components contains the reusable widgets of the main window.
package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FolderNav is the raw-data folder navigation section: a path entry, a
// Browse button for the native folder picker, and a Read Files trigger.
type FolderNav struct {
	container *fyne.Container
	pathEntry *widget.Entry
	browseBtn *widget.Button
	scanBtn   *widget.Button

	browseHandler func()
	scanHandler   func(path string)
}

// NewFolderNav creates the folder navigation component with the given
// initial path.
func NewFolderNav(initialPath string) *FolderNav {
	fn := &FolderNav{}
	fn.createComponents(initialPath)
	fn.buildLayout()
	return fn
}

func (fn *FolderNav) createComponents(initialPath string) {
	fn.pathEntry = widget.NewEntry()
	fn.pathEntry.SetText(initialPath)
	fn.pathEntry.SetPlaceHolder("Directory path")

	fn.browseBtn = widget.NewButton("Browse", func() {
		if fn.browseHandler != nil {
			fn.browseHandler()
		}
	})
	fn.scanBtn = widget.NewButton("Read Files", func() {
		if fn.scanHandler != nil {
			fn.scanHandler(fn.pathEntry.Text)
		}
	})
}

func (fn *FolderNav) buildLayout() {
	buttons := container.NewHBox(fn.browseBtn, fn.scanBtn)
	fn.container = container.NewBorder(nil, nil,
		widget.NewLabel("Directory Path:"), buttons, fn.pathEntry)
}

// SetBrowseHandler sets the handler for the Browse button.
func (fn *FolderNav) SetBrowseHandler(handler func()) {
	fn.browseHandler = handler
}

// SetScanHandler sets the handler invoked with the entered path when the
// user triggers a directory scan.
func (fn *FolderNav) SetScanHandler(handler func(path string)) {
	fn.scanHandler = handler
}

// SetPath updates the displayed directory path.
func (fn *FolderNav) SetPath(path string) {
	fyne.Do(func() {
		fn.pathEntry.SetText(path)
	})
}

// Path returns the currently entered directory path.
func (fn *FolderNav) Path() string {
	return fn.pathEntry.Text
}

// GetContainer returns the folder navigation container.
func (fn *FolderNav) GetContainer() *fyne.Container {
	return fn.container
}
