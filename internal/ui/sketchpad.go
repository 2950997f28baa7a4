package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"localsketch/internal/state"
)

// SketchPad is a freehand drawing surface. Mouse and touch input both
// funnel into the same press, move and release transitions: a press
// starts a stroke, dragging extends it, releasing ends it. Every
// recorded point repaints the whole sketch.
type SketchPad struct {
	widget.BaseWidget

	rec *state.Recorder

	strokeColor color.Color
	strokeWidth float32

	// OnPoint fires for every point the user draws, OnClear when the
	// sketch is emptied. Both run on the event goroutine.
	OnPoint func(p state.Point)
	OnClear func()
}

var _ fyne.Widget = (*SketchPad)(nil)
var _ fyne.Draggable = (*SketchPad)(nil)
var _ desktop.Mouseable = (*SketchPad)(nil)
var _ desktop.Hoverable = (*SketchPad)(nil)
var _ mobile.Touchable = (*SketchPad)(nil)

func NewSketchPad(strokeColor color.Color, strokeWidth float32) *SketchPad {
	s := &SketchPad{
		rec:         state.NewRecorder(),
		strokeColor: strokeColor,
		strokeWidth: strokeWidth,
	}
	s.ExtendBaseWidget(s)
	return s
}

// MouseDown starts a stroke. Only the primary button draws.
func (s *SketchPad) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.press(e.Position)
}

// MouseUp ends the stroke.
func (s *SketchPad) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.release()
}

// Dragged extends the active stroke. A drag that began without a
// primary press records nothing.
func (s *SketchPad) Dragged(e *fyne.DragEvent) {
	s.move(e.Position)
}

// DragEnd ends the stroke for drags the driver finishes without a
// matching MouseUp, such as a touch lift.
func (s *SketchPad) DragEnd() {
	s.release()
}

// TouchDown starts a stroke from a touch press. The event position is
// already local to the widget.
func (s *SketchPad) TouchDown(e *mobile.TouchEvent) {
	s.press(e.Position)
}

// TouchUp ends the stroke.
func (s *SketchPad) TouchUp(*mobile.TouchEvent) {
	s.release()
}

// TouchCancel fires when the system takes the touch away mid-gesture.
// Recording stops and the sketch keeps what it has, without a repaint.
func (s *SketchPad) TouchCancel(*mobile.TouchEvent) {
	s.leave()
}

func (s *SketchPad) MouseIn(*desktop.MouseEvent) {}

// MouseMoved never records. Movement while drawing arrives through
// Dragged; hover movement is ignored.
func (s *SketchPad) MouseMoved(*desktop.MouseEvent) {}

// MouseOut stops recording when the pointer leaves the surface. No
// repaint, the sketch is unchanged.
func (s *SketchPad) MouseOut() {
	s.leave()
}

func (s *SketchPad) press(pos fyne.Position) {
	s.rec.Press(pos.X, pos.Y)
	s.emit(state.Point{X: pos.X, Y: pos.Y})
	s.Refresh()
}

func (s *SketchPad) move(pos fyne.Position) {
	if !s.rec.Move(pos.X, pos.Y) {
		return
	}
	s.emit(state.Point{X: pos.X, Y: pos.Y, Drag: true})
	s.Refresh()
}

func (s *SketchPad) release() {
	if s.rec.Release() {
		s.Refresh()
	}
}

func (s *SketchPad) leave() {
	s.rec.Leave()
}

func (s *SketchPad) emit(p state.Point) {
	if s.OnPoint != nil {
		s.OnPoint(p)
	}
}

// Clear empties the sketch. Valid at any time, including mid-stroke; a
// held pointer keeps drawing onto the emptied surface.
func (s *SketchPad) Clear() {
	s.rec.Clear()
	if s.OnClear != nil {
		s.OnClear()
	}
	s.Refresh()
}

// Drawing reports whether a stroke is in progress.
func (s *SketchPad) Drawing() bool {
	return s.rec.Drawing()
}

// Snapshot returns a copy of every recorded point in draw order. Safe
// to call from any goroutine.
func (s *SketchPad) Snapshot() []state.Point {
	return s.rec.Points()
}

// SetStroke changes the pen. The whole sketch repaints in the new
// style since every repaint redraws all points. Call on the UI thread.
func (s *SketchPad) SetStroke(c color.Color, width float32) {
	s.strokeColor = c
	s.strokeWidth = width
	s.Refresh()
}

func (s *SketchPad) CreateRenderer() fyne.WidgetRenderer {
	return &sketchRenderer{
		pad:        s,
		background: canvas.NewRectangle(color.White),
	}
}

type sketchRenderer struct {
	pad        *SketchPad
	background *canvas.Rectangle
}

func (r *sketchRenderer) Objects() []fyne.CanvasObject {
	return sketchObjects(r.background, r.pad.rec.Points(), r.pad.strokeColor, r.pad.strokeWidth)
}

func (r *sketchRenderer) Refresh() {
	canvas.Refresh(r.pad)
}

func (r *sketchRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *sketchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *sketchRenderer) Destroy() {}

// sketchObjects builds the draw list for a set of recorded points: the
// background first, then one segment and one cap dot per point. A drag
// point joins to its predecessor; any other point, including a drag
// point with no predecessor, gets a one-unit mark at its own position.
func sketchObjects(background *canvas.Rectangle, points []state.Point, strokeColor color.Color, width float32) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, 1+2*len(points))
	objects = append(objects, background)

	for i, p := range points {
		start := fyne.NewPos(p.X-1, p.Y)
		if p.Drag && i > 0 {
			prev := points[i-1]
			start = fyne.NewPos(prev.X, prev.Y)
		}

		segment := canvas.NewLine(strokeColor)
		segment.StrokeWidth = width
		segment.Position1 = start
		segment.Position2 = fyne.NewPos(p.X, p.Y)
		objects = append(objects, segment, capDot(p, strokeColor, width))
	}
	return objects
}

// capDot rounds off a segment end. Lines in this toolkit have flat
// ends, so each point gets a filled circle of pen width over it, which
// also rounds the joins between consecutive segments.
func capDot(p state.Point, strokeColor color.Color, width float32) fyne.CanvasObject {
	radius := width / 2
	dot := canvas.NewCircle(strokeColor)
	dot.Position1 = fyne.NewPos(p.X-radius, p.Y-radius)
	dot.Position2 = fyne.NewPos(p.X+radius, p.Y+radius)
	return dot
}
