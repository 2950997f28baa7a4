package state

// Point is one recorded position on the sketch surface, in
// surface-local coordinates.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	// Drag is true when the point was captured while the pointer was
	// continuously held down since the previous point in the same
	// stroke, false when the point starts a new stroke.
	Drag bool `json:"drag"`
}
