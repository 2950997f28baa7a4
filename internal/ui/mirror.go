package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"localsketch/internal/net"
	"localsketch/internal/state"
)

// Mirror is a read-only copy of a shared sketch. It paints exactly
// like SketchPad but takes no input; points arrive from the session
// host instead.
type Mirror struct {
	widget.BaseWidget

	rec *state.Recorder

	strokeColor color.Color
	strokeWidth float32
}

var _ fyne.Widget = (*Mirror)(nil)

func NewMirror(strokeColor color.Color, strokeWidth float32) *Mirror {
	m := &Mirror{
		rec:         state.NewRecorder(),
		strokeColor: strokeColor,
		strokeWidth: strokeWidth,
	}
	m.ExtendBaseWidget(m)
	return m
}

// SetPoints replaces the whole sketch, used for the join snapshot.
func (m *Mirror) SetPoints(points []state.Point) {
	m.rec.Replace(points)
	m.Refresh()
}

// AddPoint appends one live point from the host.
func (m *Mirror) AddPoint(p state.Point) {
	m.rec.Append(p)
	m.Refresh()
}

// Clear empties the mirror.
func (m *Mirror) Clear() {
	m.rec.Clear()
	m.Refresh()
}

// Len reports how many points the mirror holds.
func (m *Mirror) Len() int {
	return m.rec.Len()
}

func (m *Mirror) CreateRenderer() fyne.WidgetRenderer {
	return &mirrorRenderer{
		mirror:     m,
		background: canvas.NewRectangle(color.White),
	}
}

type mirrorRenderer struct {
	mirror     *Mirror
	background *canvas.Rectangle
}

func (r *mirrorRenderer) Objects() []fyne.CanvasObject {
	return sketchObjects(r.background, r.mirror.rec.Points(), r.mirror.strokeColor, r.mirror.strokeWidth)
}

func (r *mirrorRenderer) Refresh() {
	canvas.Refresh(r.mirror)
}

func (r *mirrorRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *mirrorRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *mirrorRenderer) Destroy() {}

// BindViewer wires session updates to the mirror. The viewer delivers
// them on its read goroutine, so every update hops to the UI thread.
func BindViewer(v *net.Viewer, m *Mirror) {
	v.OnSnapshot = func(points []state.Point) {
		fyne.Do(func() { m.SetPoints(points) })
	}
	v.OnPoint = func(p state.Point) {
		fyne.Do(func() { m.AddPoint(p) })
	}
	v.OnClear = func() {
		fyne.Do(func() { m.Clear() })
	}
}
