package state

import "sync"

// Recorder owns the ordered list of recorded points and the
// pressed-or-not pointer state for a single sketch surface. All input
// handlers of the owning widget funnel into it: Press, Move, Release
// and Leave implement the two-state press/drag machine, Clear empties
// the buffer.
//
// Mutation happens on the UI event thread only. The lock exists for
// readers on other goroutines (the share snapshot); Points returns a
// copy so callers never alias the live buffer.
type Recorder struct {
	mu      sync.RWMutex
	points  []Point
	drawing bool
}

// NewRecorder returns an empty recorder in the idle (not drawing)
// state.
func NewRecorder() *Recorder {
	return &Recorder{
		points:  make([]Point, 0),
		drawing: false,
	}
}

// Press records the start of a new stroke at (x, y) and enters the
// drawing state. A press while already drawing simply starts a fresh
// stroke.
func (r *Recorder) Press(x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawing = true
	r.points = append(r.points, Point{X: x, Y: y})
}

// Move records a drag point at (x, y) and reports whether anything was
// recorded. A move while not drawing is a silent no-op: the pointer is
// just hovering, nothing is appended and the caller must not repaint.
func (r *Recorder) Move(x, y float32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.drawing {
		return false
	}
	r.points = append(r.points, Point{X: x, Y: y, Drag: true})
	return true
}

// Release leaves the drawing state and reports whether the recorder
// was drawing. A release without a preceding press is a no-op.
func (r *Recorder) Release() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.drawing
	r.drawing = false
	return was
}

// Leave leaves the drawing state without any other effect. Used when
// the pointer exits the surface or the gesture is cancelled.
func (r *Recorder) Leave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawing = false
}

// Clear empties the buffer. The drawing state is kept as-is, so a
// stroke in progress keeps recording after a clear.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = make([]Point, 0)
}

// Append adds one already-formed point to the buffer, preserving
// insertion order. Gesture handling goes through Press and Move; this
// is for feeding a surface from points recorded elsewhere, like a
// mirror of a shared session.
func (r *Recorder) Append(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = append(r.points, p)
}

// Replace swaps the whole buffer for a copy of points.
func (r *Recorder) Replace(points []Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = make([]Point, len(points))
	copy(r.points, points)
}

// Drawing reports whether a press is currently held.
func (r *Recorder) Drawing() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.drawing
}

// Len returns the number of recorded points.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points)
}

// Points returns a copy of the recorded points in insertion order.
func (r *Recorder) Points() []Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	points := make([]Point, len(r.points))
	copy(points, r.points)
	return points
}
