package components

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FileList is the multi-select list of CSV files found in the current
// directory, with the load triggers beneath it.
type FileList struct {
	container *fyne.Container
	checks    *widget.CheckGroup
	scroll    *container.Scroll
	info      *widget.Label
	loadBtn   *widget.Button
	loadAll   *widget.Button

	selectionHandler func(selected []string)
	loadHandler      func()
	loadAllHandler   func()
}

// NewFileList creates an empty file list component.
func NewFileList() *FileList {
	fl := &FileList{}
	fl.createComponents()
	fl.buildLayout()
	return fl
}

func (fl *FileList) createComponents() {
	fl.checks = widget.NewCheckGroup(nil, func(selected []string) {
		fl.updateInfo(selected)
		if fl.selectionHandler != nil {
			fl.selectionHandler(selected)
		}
	})

	fl.info = widget.NewLabel("No files selected")
	fl.info.Wrapping = fyne.TextWrapWord

	fl.loadBtn = widget.NewButton("Load Selected Files", func() {
		if fl.loadHandler != nil {
			fl.loadHandler()
		}
	})
	fl.loadAll = widget.NewButton("Load All Files", func() {
		if fl.loadAllHandler != nil {
			fl.loadAllHandler()
		}
	})
}

func (fl *FileList) buildLayout() {
	fl.scroll = container.NewVScroll(fl.checks)
	fl.scroll.SetMinSize(fyne.NewSize(280, 220))

	bottom := container.NewVBox(
		fl.info,
		container.NewHBox(fl.loadBtn, fl.loadAll),
	)
	fl.container = container.NewBorder(
		widget.NewLabel("Available Files:"), bottom, nil, nil, fl.scroll)
}

func (fl *FileList) updateInfo(selected []string) {
	if len(selected) == 0 {
		fl.info.SetText("No files selected")
		return
	}
	fl.info.SetText(fmt.Sprintf("Selected %d file(s): %s",
		len(selected), strings.Join(selected, ", ")))
}

// SetFiles replaces the listed files and clears the selection.
func (fl *FileList) SetFiles(files []string) {
	fyne.Do(func() {
		fl.checks.Options = append([]string(nil), files...)
		fl.checks.SetSelected(nil)
		fl.checks.Refresh()
		fl.updateInfo(nil)
	})
}

// Files returns the currently listed filenames.
func (fl *FileList) Files() []string {
	return append([]string(nil), fl.checks.Options...)
}

// Selected returns the currently checked filenames.
func (fl *FileList) Selected() []string {
	return append([]string(nil), fl.checks.Selected...)
}

// SelectAll checks every listed file.
func (fl *FileList) SelectAll() {
	fyne.Do(func() {
		fl.checks.SetSelected(append([]string(nil), fl.checks.Options...))
	})
}

// SetLoading disables the load triggers while a batch load is running.
func (fl *FileList) SetLoading(loading bool) {
	fyne.Do(func() {
		if loading {
			fl.loadBtn.SetText("Loading...")
			fl.loadBtn.Disable()
			fl.loadAll.Disable()
		} else {
			fl.loadBtn.SetText("Load Selected Files")
			fl.loadBtn.Enable()
			fl.loadAll.Enable()
		}
	})
}

// SetSelectionHandler sets the handler invoked when the selection changes.
func (fl *FileList) SetSelectionHandler(handler func(selected []string)) {
	fl.selectionHandler = handler
}

// SetLoadHandler sets the handler for the Load Selected Files button.
func (fl *FileList) SetLoadHandler(handler func()) {
	fl.loadHandler = handler
}

// SetLoadAllHandler sets the handler for the Load All Files button.
func (fl *FileList) SetLoadAllHandler(handler func()) {
	fl.loadAllHandler = handler
}

// GetContainer returns the file list container.
func (fl *FileList) GetContainer() *fyne.Container {
	return fl.container
}
