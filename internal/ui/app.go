package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// App owns the main window and the status line under whichever sketch
// surface the session shows.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	status  *widget.Label
}

func New(title string) *App {
	a := app.New()
	w := a.NewWindow(title)
	return &App{
		fyneApp: a,
		window:  w,
		status:  widget.NewLabel("Ready"),
	}
}

// ShowSketch fills the window with an interactive pad and its toolbar.
func (a *App) ShowSketch(pad *SketchPad, width, height float32) {
	bar := NewToolbar(pad.Clear, a.status)
	a.window.SetContent(container.NewBorder(bar, nil, nil, nil, pad))
	a.window.Resize(fyne.NewSize(width, height))
}

// ShowMirror fills the window with a read-only mirror, the status line
// underneath.
func (a *App) ShowMirror(m *Mirror, width, height float32) {
	bottom := container.NewHBox(layout.NewSpacer(), a.status)
	a.window.SetContent(container.NewBorder(nil, bottom, nil, nil, m))
	a.window.Resize(fyne.NewSize(width, height))
}

// SetStatus updates the status line. Safe to call from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() {
		a.status.SetText(text)
	})
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}
