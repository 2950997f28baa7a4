package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the strip above the sketch: the clear action on
// the left, the session status on the right.
func NewToolbar(onClear func(), status *widget.Label) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), onClear),
	)
	return container.NewHBox(tb, layout.NewSpacer(), status)
}
