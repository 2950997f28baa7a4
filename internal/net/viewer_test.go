package net

import (
	"testing"

	"localsketch/internal/state"
)

func encodeForTest(t *testing.T, msg Message) []byte {
	t.Helper()
	data, err := msg.encode()
	if err != nil {
		t.Fatalf("encode %s: %v", msg.Type, err)
	}
	return data
}

func TestViewerDispatchesSnapshot(t *testing.T) {
	var got []state.Point
	v := &Viewer{OnSnapshot: func(points []state.Point) { got = points }}

	points := []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4, Drag: true}}
	if err := v.handle(encodeForTest(t, SnapshotMessage(points))); err != nil {
		t.Fatalf("handle snapshot: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("snapshot delivered %d points, expected 2", len(got))
	}
	if got[1] != (state.Point{X: 3, Y: 4, Drag: true}) {
		t.Errorf("second point = %+v, expected {3 4 true}", got[1])
	}
}

func TestViewerDispatchesPoint(t *testing.T) {
	var got state.Point
	v := &Viewer{OnPoint: func(p state.Point) { got = p }}

	if err := v.handle(encodeForTest(t, PointMessage(state.Point{X: 7, Y: 8}))); err != nil {
		t.Fatalf("handle point: %v", err)
	}

	if got != (state.Point{X: 7, Y: 8}) {
		t.Errorf("point = %+v, expected {7 8 false}", got)
	}
}

func TestViewerDispatchesClear(t *testing.T) {
	cleared := false
	v := &Viewer{OnClear: func() { cleared = true }}

	if err := v.handle(encodeForTest(t, ClearMessage())); err != nil {
		t.Fatalf("handle clear: %v", err)
	}
	if !cleared {
		t.Error("clear callback never fired")
	}
}

func TestViewerIgnoresMissingCallbacks(t *testing.T) {
	v := &Viewer{}
	for _, msg := range []Message{
		SnapshotMessage(nil),
		PointMessage(state.Point{X: 1, Y: 1}),
		ClearMessage(),
	} {
		if err := v.handle(encodeForTest(t, msg)); err != nil {
			t.Errorf("handle %s with no callbacks: %v", msg.Type, err)
		}
	}
}

func TestViewerRejectsMalformedMessages(t *testing.T) {
	v := &Viewer{}
	if err := v.handle([]byte("not json")); err == nil {
		t.Error("malformed payload accepted")
	}
	if err := v.handle([]byte(`{"type":"resize"}`)); err == nil {
		t.Error("unknown message type accepted")
	}
}
